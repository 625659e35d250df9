package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"schedsim/internal/requests"
	"schedsim/internal/schedulers"
)

var (
	simulateFile      string
	simulateAlgorithm string
	simulateQuantum   int
	simulateAll       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scheduling simulation from a JSON process file",
	Long: `Run a scheduling simulation offline and print the per-process timing
table, the Gantt timeline and the aggregate metrics.

The input file uses the same shape as the HTTP API:

  {"processes": [{"id": "A", "arrival_time": 0, "burst_time": 5, "priority": 1}]}

An algorithm or time quantum in the file is honored unless the matching
flag is set explicitly.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateFile, "file", "f", "", "JSON file with the process set (required)")
	simulateCmd.Flags().StringVarP(&simulateAlgorithm, "algorithm", "a", "fcfs", "algorithm: fcfs, sjf, priority or rr")
	simulateCmd.Flags().IntVarP(&simulateQuantum, "quantum", "q", 2, "time quantum for round-robin")
	simulateCmd.Flags().BoolVar(&simulateAll, "all", false, "run every algorithm and print a comparison summary")
	_ = simulateCmd.MarkFlagRequired("file")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(simulateFile)
	if err != nil {
		return fmt.Errorf("read process file: %w", err)
	}

	var request requests.ScheduleRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return fmt.Errorf("parse process file: %w", err)
	}

	name := simulateAlgorithm
	if !cmd.Flags().Changed("algorithm") && request.Algorithm != "" {
		name = request.Algorithm
	}
	quantum := simulateQuantum
	if !cmd.Flags().Changed("quantum") && request.TimeQuantum != 0 {
		quantum = request.TimeQuantum
	}

	out := cmd.OutOrStdout()
	specs := request.Specs()

	if simulateAll {
		results := make([]*schedulers.ScheduleResult, 0, len(schedulers.Algorithms()))
		for _, algorithm := range schedulers.Algorithms() {
			result, err := schedulers.Schedule(algorithm, specs, quantum)
			if err != nil {
				return fmt.Errorf("%s: %w", algorithm, err)
			}
			printSchedule(out, result)
			fmt.Fprintln(out)
			results = append(results, result)
		}
		printComparison(out, results)
		return nil
	}

	algorithm, err := schedulers.ParseAlgorithm(name)
	if err != nil {
		return err
	}
	result, err := schedulers.Schedule(algorithm, specs, quantum)
	if err != nil {
		return err
	}
	printSchedule(out, result)
	return nil
}

func printSchedule(w io.Writer, result *schedulers.ScheduleResult) {
	fmt.Fprintf(w, "=== %s ===\n", strings.ToUpper(string(result.Algorithm)))
	fmt.Fprintf(w, "%-10s %-8s %-8s %-9s %-8s %-12s %-8s %-12s %-10s\n",
		"ID", "Arrival", "Burst", "Priority", "Start", "Completion", "Waiting", "Turnaround", "Response")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for _, task := range result.Tasks {
		priority := "-"
		if task.Priority != nil {
			priority = strconv.Itoa(*task.Priority)
		}
		fmt.Fprintf(w, "%-10s %-8d %-8d %-9s %-8d %-12d %-8d %-12d %-10d\n",
			task.ID, task.ArrivalTime, task.BurstTime, priority, task.StartTime,
			task.CompletionTime, task.WaitingTime, task.TurnaroundTime, task.ResponseTime)
	}

	fmt.Fprintln(w)
	renderGantt(w, result.Timeline)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Average Waiting Time:    %.2f\n", result.AverageWaiting)
	fmt.Fprintf(w, "Average Turnaround Time: %.2f\n", result.AverageTurnaround)
	fmt.Fprintf(w, "Average Response Time:   %.2f\n", result.AverageResponse)
	fmt.Fprintf(w, "Total Time: %d | Idle Time: %d | CPU Utilization: %.2f%% | Throughput: %.3f\n",
		result.TotalTime, result.IdleTime, result.CPUUtilization*100, result.Throughput)
}

// renderGantt draws the timeline as an ASCII bar with each block's end
// time aligned under its closing separator.
func renderGantt(w io.Writer, timeline []schedulers.TimelineBlock) {
	var bar strings.Builder
	var marks strings.Builder

	bar.WriteString("|")
	marks.WriteString("0")

	for _, block := range timeline {
		label := block.ProcessID
		if block.Idle {
			label = "idle"
		}
		end := strconv.Itoa(block.End)

		// Wide enough for the centered label and the time marker.
		width := len(label) + 2
		if len(end)+1 > width {
			width = len(end) + 1
		}

		padding := width - len(label)
		left := padding / 2
		bar.WriteString(strings.Repeat(" ", left))
		bar.WriteString(label)
		bar.WriteString(strings.Repeat(" ", padding-left))
		bar.WriteString("|")

		marks.WriteString(strings.Repeat(" ", width+1-len(end)))
		marks.WriteString(end)
	}

	fmt.Fprintln(w, bar.String())
	fmt.Fprintln(w, marks.String())
}

func printComparison(w io.Writer, results []*schedulers.ScheduleResult) {
	fmt.Fprintln(w, "Comparison Summary")
	fmt.Fprintf(w, "%-10s %-12s %-12s %-12s\n", "Algorithm", "Avg Wait", "Avg TAT", "Avg Response")
	fmt.Fprintln(w, strings.Repeat("-", 48))
	for _, result := range results {
		fmt.Fprintf(w, "%-10s %-12.2f %-12.2f %-12.2f\n",
			result.Algorithm, result.AverageWaiting, result.AverageTurnaround, result.AverageResponse)
	}
}
