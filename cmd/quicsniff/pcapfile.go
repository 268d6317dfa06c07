package main

import "os"

// openPcap opens a pcap file for reading.
func openPcap(path string) (*os.File, error) {
	return os.Open(path)
}
