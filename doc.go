/*
Package sheetfab coordinates the transition of a floating action control into a sheet
and back, the way material design morphs a floating action button into a menu.

The package does not draw anything. It drives host owned elements through the Element,
Control and Sheet interfaces and sequences their animations on a single event loop,
abstracted by the Loop interface. The timeline package provides a loop which can be
advanced by any frame clock, the element package provides in-memory elements which
the hosts render.

To check the supported commands of the demo program type:

	$ sheetfab --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"image"
		"image/color"
		"time"

		"github.com/esimov/sheetfab"
		"github.com/esimov/sheetfab/element"
		"github.com/esimov/sheetfab/timeline"
	)

	func main() {
		loop := timeline.New(time.Now())
		fab := element.NewControl("fab", image.Rect(300, 500, 356, 556))
		sheet := element.NewCard("sheet", image.Rect(100, 200, 356, 556))
		overlay := element.NewBox("overlay", image.Rect(0, 0, 400, 600))

		c := sheetfab.New(loop, fab, sheet, overlay,
			color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			color.NRGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
			nil,
		)
		c.Show()

		// Advance the loop on every frame.
		for loop.Pending() {
			loop.Advance(time.Now())
		}
	}
*/
package sheetfab
