package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/limaJavier/examblocking/pkg/ranking"
)

func main() {
	filePathPtr := flag.String("file", "", "Path to a JSON list of blocking results")
	topPtr := flag.Int("top", 0, "Number of results to print; if zero, all results are printed")
	flag.Parse()

	if *filePathPtr == "" {
		log.Fatal("an input file must be specified")
	} else if *topPtr < 0 {
		log.Fatalf("top must not be negative: %v", *topPtr)
	}

	entries, err := ranking.EntriesFromJson(*filePathPtr)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	ranking.Sort(entries)
	if *topPtr > 0 && *topPtr < len(entries) {
		entries = entries[:*topPtr]
	}

	for position, entry := range entries {
		fmt.Printf("%v. result %v: violated rules %v, unassigned choices %v, imbalance histogram %v, same course-type in slot %v\n",
			position+1,
			entry.Id,
			len(entry.ViolatedRules),
			entry.UnassignedChoices,
			entry.ImbalanceHistogram,
			entry.SameCourseTypeInSlot,
		)
	}
}
