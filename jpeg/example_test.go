package jpeg_test

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/tajtiattila/jpegexif/exif"
	"github.com/tajtiattila/jpegexif/exif/exiftag"
	"github.com/tajtiattila/jpegexif/jpeg"
)

// Use Container to print the Exif in a JPEG file.
func ExampleContainer() {
	p, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		fmt.Printf("read error: %v", err)
		return
	}

	c, err := jpeg.Parse(p)
	if err != nil {
		fmt.Printf("jpeg error: %v", err)
		return
	}

	if x := c.Exif(); x != nil {
		exif.Fdump(os.Stdout, x)
	}
}

// Use Container to change the camera model in a JPEG file.
func ExampleContainer_SetExif() {
	p, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v", err)
		return
	}

	c, err := jpeg.Parse(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpeg error: %v", err)
		return
	}

	x := c.Exif()
	if x == nil {
		x = exif.New()
	}
	if err := x.Put(exiftag.Model, exif.Ascii("Pinhole")); err != nil {
		fmt.Fprintf(os.Stderr, "exif error: %v", err)
		return
	}
	if err := c.SetExif(x); err != nil {
		fmt.Fprintf(os.Stderr, "jpeg error: %v", err)
		return
	}

	if _, err := c.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "write error: %v", err)
	}
}
