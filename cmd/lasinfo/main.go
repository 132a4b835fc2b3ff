// Command lasinfo prints the header and VLR summary of a .las file, the
// way lasinfo/pdal-info do for the format this library implements.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goslas/lasgo"
	"github.com/goslas/lasgo/dataset"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <file.las|file.laz>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("lasinfo: %v", err)
	}
	defer f.Close()

	var d *dataset.Dataset
	if strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), "laz") {
		d, err = lasgo.OpenLAZ(f)
	} else {
		d, err = lasgo.Open(f)
	}
	if err != nil {
		log.Fatalf("lasinfo: %v", err)
	}

	printHeader(path, d)
	printVLRs(d)
}

func printHeader(path string, d *dataset.Dataset) {
	h := d.Header

	fmt.Printf("file:              %s\n", path)
	fmt.Printf("version:           %d.%d\n", h.Version.Major, h.Version.Minor)
	fmt.Printf("system identifier: %q\n", h.SystemIdentifier)
	fmt.Printf("software:          %q\n", h.SoftwareIdentifier)
	fmt.Printf("point format:      %d\n", h.PointFormat)
	fmt.Printf("point count:       %d\n", d.Table.Len())
	fmt.Printf("point record len:  %d\n", h.PointRecordLength)
	fmt.Printf("scale:             %.6g %.6g %.6g\n", h.Scale.X, h.Scale.Y, h.Scale.Z)
	fmt.Printf("offset:            %.6g %.6g %.6g\n", h.Offset.X, h.Offset.Y, h.Offset.Z)
	fmt.Printf("min:               %.6g %.6g %.6g\n", h.Min.X, h.Min.Y, h.Min.Z)
	fmt.Printf("max:               %.6g %.6g %.6g\n", h.Max.X, h.Max.Y, h.Max.Z)
	fmt.Printf("vlr count:         %d\n", h.VLRCount)
	fmt.Printf("evlr count:        %d\n", h.EVLRCount)
}

func printVLRs(d *dataset.Dataset) {
	if len(d.VLRs) > 0 {
		fmt.Println("\nVLRs:")
		for _, v := range d.VLRs {
			fmt.Printf("  user_id=%-16s record_id=%-5d description=%q\n", v.UserID, v.RecordID, v.Description)
		}
	}

	if len(d.EVLRs) > 0 {
		fmt.Println("\nEVLRs:")
		for _, v := range d.EVLRs {
			fmt.Printf("  user_id=%-16s record_id=%-5d description=%q\n", v.UserID, v.RecordID, v.Description)
		}
	}
}
