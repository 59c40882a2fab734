package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"leoroute/internal/domain"
	"leoroute/internal/fstate"

	"github.com/peterh/liner"
)

func main() {
	dir := flag.String("dir", ".", "directory containing fstate_<ns>.txt delta files")
	timeStepNs := flag.Int64("timeStepNs", 1, "time step in nanoseconds, matching the run that produced the files")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	store, err := fstate.Open(*dir, *timeStepNs)
	if err != nil {
		log.Fatalf("failed to open fstate directory %q: %v", *dir, err)
	}

	fmt.Printf("leoroute forwarding-table query shell. Source: %s\n", *dir)
	fmt.Println("Available commands: route <src> <dst> [t] / exit")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	currentT := int64(0)
	for {
		input, err := line.Prompt(fmt.Sprintf("fsquery[t=%d]> ", currentT))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("Aborted")
				continue
			}
			break
		}
		line.AppendHistory(input)

		args := strings.Fields(strings.TrimSpace(input))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "route":
			if len(args) < 3 {
				fmt.Println("Usage: route <src> <dst> [t]")
				continue
			}
			src, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Printf("invalid src: %v\n", err)
				continue
			}
			dst, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				fmt.Printf("invalid dst: %v\n", err)
				continue
			}
			t := currentT
			if len(args) >= 4 {
				t, err = strconv.ParseInt(args[3], 10, 64)
				if err != nil {
					fmt.Printf("invalid t: %v\n", err)
					continue
				}
				currentT = t
			}

			table, err := store.TableAt(t)
			if err != nil {
				fmt.Printf("failed to reconstruct table at t=%d: %v\n", t, err)
				continue
			}
			key := domain.ForwardingKey{Src: domain.NodeID(src), Dst: domain.NodeID(dst)}
			entry, ok := table[key]
			if !ok {
				fmt.Printf("no entry for (%d, %d) at t=%d\n", src, dst, t)
				continue
			}
			if entry.IsDrop() {
				fmt.Printf("(%d, %d) at t=%d: DROP\n", src, dst, t)
				continue
			}
			fmt.Printf("(%d, %d) at t=%d: next_hop=%d out_iface=%d in_iface=%d\n",
				src, dst, t, entry.NextHop, entry.OutIface, entry.InIface)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Printf("unknown command: %s\n", args[0])
		}
	}
}
