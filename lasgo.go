// Package lasgo reads and writes ASPRS LAS/LAZ point-cloud files.
//
// # Basic usage
//
// Reading a file:
//
//	f, _ := os.Open("scan.las")
//	defer f.Close()
//	d, err := lasgo.Open(f)
//
// Building one from scratch and writing it out:
//
//	d, _ := lasgo.New(pointformat.V1_4, pointformat.Format6)
//	d.AddPoints([]pointformat.Fields{{X: 1, Y: 2, Z: 3}})
//	out, _ := os.Create("out.las")
//	defer out.Close()
//	err := lasgo.Write(out, d)
//
// # Package structure
//
// This package is a thin convenience wrapper around codec (whole-file
// read/write), dataset (the in-memory point table and mutation API), and
// laz (the compressed-transport boundary). Use those packages directly for
// anything beyond the common open/create/write paths.
package lasgo

import (
	"bytes"
	"io"

	"github.com/goslas/lasgo/codec"
	"github.com/goslas/lasgo/dataset"
	"github.com/goslas/lasgo/laz"
	"github.com/goslas/lasgo/pointformat"
)

// Open reads a whole uncompressed .las stream into a Dataset.
func Open(r io.Reader) (*dataset.Dataset, error) {
	return codec.Read(r)
}

// OpenLAZ reads a compressed .laz stream, decompressing it across the
// transport boundary described in the laz package before decoding it the
// same way Open does.
func OpenLAZ(r io.Reader, opts ...laz.Option) (*dataset.Dataset, error) {
	lazData, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	facade, err := laz.New(opts...)
	if err != nil {
		return nil, err
	}

	lasData, err := facade.Decompress(lazData)
	if err != nil {
		return nil, err
	}

	return codec.Read(bytes.NewReader(lasData))
}

// New creates an empty Dataset in the given spec version and point format.
func New(version pointformat.Version, format pointformat.Format) (*dataset.Dataset, error) {
	return dataset.New(version, format)
}

// Write encodes d as an uncompressed .las stream.
func Write(w io.Writer, d *dataset.Dataset) error {
	return codec.Write(w, d)
}

// WriteLAZ encodes d as an uncompressed .las stream in memory, then
// compresses it across the transport boundary before writing it to w.
func WriteLAZ(w io.Writer, d *dataset.Dataset, opts ...laz.Option) error {
	var buf bytes.Buffer

	if err := codec.Write(&buf, d); err != nil {
		return err
	}

	facade, err := laz.New(opts...)
	if err != nil {
		return err
	}

	lazData, err := facade.Compress(buf.Bytes())
	if err != nil {
		return err
	}

	_, err = w.Write(lazData)

	return err
}
