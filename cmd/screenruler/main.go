// Package main provides the CLI entrypoint for screenruler.
//
// screenruler exposes the exact unit conversion table used by the ruler:
//   - convert values between px, pt, em, in, mm and pi (or any units of a
//     custom factor file)
//   - inspect how every factor was derived
//   - lay out ruler ticks for a pixel span
//   - validate factor files
package main

import (
	"os"

	"k8s.io/klog/v2"
)

func main() {
	err := newRootCommand().Execute()
	klog.Flush()

	if err != nil {
		os.Exit(1)
	}
}
