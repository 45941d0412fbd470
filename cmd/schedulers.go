package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/bradleyombachi/rrsim/sim"
)

//region Schedulers

// RRSchedule runs Round-Robin and outputs a GANTT chart, a table of timing and the
// execution sequence given:
// • an output writer
// • a title for the chart
// • the quantum and sequence cap
// • a slice of processes sorted by arrival
func RRSchedule(w io.Writer, title string, cfg sim.Config, processes []sim.Process) error {
	s, err := sim.NewSimulator(cfg, processes)
	if err != nil {
		return err
	}
	s.Run()

	m := s.Metrics()
	schedule := make([][]string, len(m.Processes))
	for i, p := range m.Processes {
		schedule[i] = []string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.Burst),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.StartTime),
			fmt.Sprint(p.Response),
			fmt.Sprint(p.Wait),
			fmt.Sprint(p.Turnaround),
			fmt.Sprint(p.FinishTime),
		}
	}

	trace := s.Trace()
	outputTitle(w, title)
	outputGantt(w, trace.Slices(), trace.Truncated())
	outputSchedule(w, schedule, m)
	outputSequence(w, trace.Entries())
	return nil
}

//endregion

//region Output helpers

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

func ganttLabel(pid int) string {
	if pid == sim.Idle {
		return "idle"
	}
	return fmt.Sprint(pid)
}

// outputGantt draws one cell per trace entry; a trailing "..." marks a capped trace.
func outputGantt(w io.Writer, gantt []sim.TimeSlice, truncated bool) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for i := range gantt {
		label := ganttLabel(gantt[i].PID)
		padding := strings.Repeat(" ", max(0, 8-len(label))/2)
		_, _ = fmt.Fprint(w, padding, label, padding, "|")
	}
	if truncated {
		_, _ = fmt.Fprint(w, " ...")
	}
	_, _ = fmt.Fprintln(w)
	for i := range gantt {
		_, _ = fmt.Fprint(w, fmt.Sprint(gantt[i].Start), "\t")
		if len(gantt)-1 == i {
			_, _ = fmt.Fprint(w, fmt.Sprint(gantt[i].Stop))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, rows [][]string, m sim.Metrics) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Burst", "Arrival", "Start", "Response", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AvgResponse),
		fmt.Sprintf("Average\n%.2f", m.AvgWait),
		fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", m.Throughput)})
	table.Render()
	_, _ = fmt.Fprintf(w, "CPU utilization %.2f%% (busy %d, idle %d, makespan %d)\n\n",
		m.Utilization*100, m.BusyTime, m.IdleTime, m.Makespan)
}

func outputSequence(w io.Writer, seq []int) {
	_, _ = fmt.Fprintln(w, "Execution sequence:", fmt.Sprint(seq))
}

//endregion
