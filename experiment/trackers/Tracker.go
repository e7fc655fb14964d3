// Package trackers implements tracking and saving of data generated
// during experiments
package trackers

import (
	"encoding/gob"
	"os"

	"github.com/golang/glog"

	ts "sfneuman.com/gridq/timestep"
)

// Tracker tracks data generated by an experiment. An experiment offers
// every environmental TimeStep to each of its Trackers through Track;
// the Tracker decides which data to cache. Save flushes the cached
// data to disk, usually once the experiment has finished.
type Tracker interface {
	Track(t ts.TimeStep)
	Save()
}

// save gob-encodes data to the file at filename
func save(filename string, data interface{}) {
	file, err := os.Create(filename)
	if err != nil {
		glog.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(data); err != nil {
		glog.Fatalf("could not encode tracked data: %v", err)
	}
}

// LoadFloats reads back float64 data saved by a Tracker
func LoadFloats(filename string) []float64 {
	file, err := os.Open(filename)
	if err != nil {
		glog.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	de := gob.NewDecoder(file)
	if err = de.Decode(&data); err != nil {
		glog.Fatalf("could not decode tracked data: %v", err)
	}
	return data
}

// LoadInts reads back int data saved by a Tracker
func LoadInts(filename string) []int {
	file, err := os.Open(filename)
	if err != nil {
		glog.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	var data []int
	de := gob.NewDecoder(file)
	if err = de.Decode(&data); err != nil {
		glog.Fatalf("could not decode tracked data: %v", err)
	}
	return data
}
