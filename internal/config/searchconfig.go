/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

// searchConfiguration holds the tunable knobs of a search instance.
type searchConfiguration struct {
	UsePonder bool

	UseQuiescence bool
	UseQSStandpat bool

	UseTT      bool
	TTSizeMb   int
	UseTTMove  bool
	UseTTValue bool
	UseQSTT    bool

	UseNullMove  bool
	NmpDepth     int
	NmpReduction int
}

func init() {
	Settings.Search.UsePonder = true

	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true

	Settings.Search.UseTT = true
	Settings.Search.TTSizeMb = 16
	Settings.Search.UseTTMove = true
	Settings.Search.UseTTValue = true
	Settings.Search.UseQSTT = true

	Settings.Search.UseNullMove = true
	Settings.Search.NmpDepth = 2
	Settings.Search.NmpReduction = 3
}

func setupSearch() {}
