// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package image reads and writes program images: a big-endian origin word
// followed by the big-endian words to place from that origin onwards.
package image

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/lassandro/lc3vm/pkg/translate"
)

var f = translate.From

var (
	ErrEmpty     = errors.New(f("image has no origin"))
	ErrTruncated = errors.New(f("image ends in the middle of a word"))
	ErrOverflow  = errors.New(f("image extends past the end of memory"))
)

// ErrImage reports which image failed to load.
type ErrImage struct {
	Path string
	Err  error
}

func (err *ErrImage) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}

// Writer receives the decoded words. *machine.Memory implements it.
type Writer interface {
	Write(addr uint16, value uint16)
}

// Decode validates an image and returns its origin and words.
func Decode(data []byte) (origin uint16, words []uint16, err error) {
	if len(data) < 2 {
		return 0, nil, ErrEmpty
	}

	if len(data)%2 != 0 {
		return 0, nil, ErrTruncated
	}

	origin = binary.BigEndian.Uint16(data)
	data = data[2:]

	if len(data)/2 > (1<<16)-int(origin) {
		return 0, nil, ErrOverflow
	}

	words = make([]uint16, len(data)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(data[i*2:])
	}

	return origin, words, nil
}

// Load reads a whole image from reader and writes it into mem. Nothing is
// written unless the entire image is valid.
func Load(reader io.Reader, mem Writer) (uint16, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}

	origin, words, err := Decode(data)
	if err != nil {
		return 0, err
	}

	for i, word := range words {
		mem.Write(origin+uint16(i), word)
	}

	return origin, nil
}

func LoadFile(path string, mem Writer) (uint16, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &ErrImage{Path: path, Err: err}
	}

	defer file.Close()

	origin, err := Load(file, mem)
	if err != nil {
		return 0, &ErrImage{Path: path, Err: err}
	}

	return origin, nil
}

// Encode writes words as an image that loads at origin.
func Encode(writer io.Writer, origin uint16, words []uint16) error {
	if len(words) > (1<<16)-int(origin) {
		return ErrOverflow
	}

	data := make([]byte, 2+len(words)*2)
	binary.BigEndian.PutUint16(data, origin)

	for i, word := range words {
		binary.BigEndian.PutUint16(data[2+i*2:], word)
	}

	_, err := writer.Write(data)
	return err
}
