// This defines a command-line utility for viewing or validating standard
// MIDI files (SMF, usually with a ".mid" extension).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/yalue/smf"
)

func run() int {
	var filename string
	var dumpEvents bool
	var checkRoundtrip bool
	flag.StringVar(&filename, "input_file", "", "The .mid file to open.")
	flag.BoolVar(&dumpEvents, "dump_events", false, "If set, print a list "+
		"of all events in the file to stdout.")
	flag.BoolVar(&checkRoundtrip, "check_roundtrip", false, "If set, "+
		"re-encode the decoded file and report whether the result decodes "+
		"to the same content.")
	flag.Parse()
	if filename == "" {
		fmt.Printf("Invalid arguments. Run with -help for more information.\n")
		return 1
	}
	data, e := os.ReadFile(filename)
	if e != nil {
		fmt.Printf("Couldn't read %s: %s\n", filename, e)
		return 1
	}
	file, e := smf.DecodeSMFFile(data)
	if e != nil {
		fmt.Printf("Couldn't parse %s: %s\n", filename, e)
		return 1
	}
	fmt.Printf("Parsed %s OK: %s.\n", filename, file.Header)
	if dumpEvents {
		for i, t := range file.Tracks {
			fmt.Printf("Track %d (%d events):\n", i, len(t.Events))
			for j, event := range t.Events {
				fmt.Printf("  %d. Time %d: %s\n", j, event.DeltaTime,
					event.Event)
			}
		}
	}
	if checkRoundtrip {
		encoded, e := file.Encode()
		if e != nil {
			fmt.Printf("Couldn't re-encode %s: %s\n", filename, e)
			return 1
		}
		reparsed, e := smf.DecodeSMFFile(encoded)
		if e != nil {
			fmt.Printf("Re-encoded %s didn't decode: %s\n", filename, e)
			return 1
		}
		recoded, e := reparsed.Encode()
		if e != nil {
			fmt.Printf("Couldn't encode re-decoded %s: %s\n", filename, e)
			return 1
		}
		if !bytes.Equal(encoded, recoded) {
			fmt.Printf("Round trip of %s isn't stable.\n", filename)
			return 1
		}
		fmt.Printf("Round trip of %s OK (%d canonical bytes).\n", filename,
			len(encoded))
	}
	return 0
}

func main() {
	os.Exit(run())
}
