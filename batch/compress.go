/*
 * compress.go, part of gostoich.
 *
 *
 * Copyright 2026 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gostoich is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package batch

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Compression formats, chosen from the file extension.
const (
	Plain = iota
	Zstd
	Gzip
	Flate
)

//Format returns the compression format for the file name.
func Format(name string) int {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	case ".zz":
		return Flate
	}
	return Plain
}

//zstd.Decoder.Close doesn't return an error so it is not an io.ReadCloser.
type zstdReader struct {
	*zstd.Decoder
}

func (z zstdReader) Close() error {
	z.Decoder.Close()
	return nil
}

//NewReader returns a reader that decompresses r according to format.
func NewReader(r io.Reader, format int) (io.ReadCloser, error) {
	switch format {
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReader{d}, nil
	case Gzip:
		return gzip.NewReader(r)
	case Flate:
		return flate.NewReader(r), nil
	}
	return io.NopCloser(r), nil
}

//NewWriter returns a writer that compresses into w according to format.
//Closing it doesn't close w.
func NewWriter(w io.Writer, format int) (io.WriteCloser, error) {
	switch format {
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case Flate:
		return flate.NewWriter(w, flate.BestCompression)
	}
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//closers closes its members in order, returning the first error.
type closers []io.Closer

func (c closers) Close() error {
	var first error
	for _, v := range c {
		if err := v.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type readCloser struct {
	io.Reader
	closers
}

type writeCloser struct {
	io.Writer
	closers
}

//Open opens the file name for reading, decompressing it if its extension
//says so. "-" is the standard input, which is not closed.
func Open(name string) (io.ReadCloser, error) {
	var f io.ReadCloser = io.NopCloser(os.Stdin)
	if name != "-" {
		var err error
		f, err = os.Open(name)
		if err != nil {
			return nil, err
		}
	}
	d, err := NewReader(bufio.NewReader(f), Format(name))
	if err != nil {
		f.Close()
		return nil, err
	}
	return readCloser{d, closers{d, f}}, nil
}

//Create creates the file name, compressing what is written to it if the extension
//says so. "-" is the standard output, which is not closed.
func Create(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	c, err := NewWriter(f, Format(name))
	if err != nil {
		f.Close()
		return nil, err
	}
	return writeCloser{c, closers{c, f}}, nil
}
