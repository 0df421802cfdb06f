package main

import (
	"fmt"
	"strings"

	"github.com/dpmayerUSGS/APPL-Tools/pkg/ode"
)

func printJobsTable(jobs []ode.Job) {
	idW, targetW, stateW := len("JOB ID"), len("TARGET"), len("STATE")
	for _, j := range jobs {
		idW = maxInt(idW, len(j.ODEJobID))
		targetW = maxInt(targetW, len(j.Target))
		stateW = maxInt(stateW, len(j.State))
	}
	const timeLayout = "2006-01-02 15:04"
	timeW := len(timeLayout)

	sep := fmt.Sprintf("+-%s-+-%s-+-%s-+-%s-+\n",
		strings.Repeat("-", idW), strings.Repeat("-", targetW),
		strings.Repeat("-", stateW), strings.Repeat("-", timeW))
	fmt.Print(sep)
	fmt.Printf("| %s | %s | %s | %s |\n",
		pad("JOB ID", idW), pad("TARGET", targetW), pad("STATE", stateW), pad("SUBMITTED", timeW))
	fmt.Print(sep)
	for _, j := range jobs {
		fmt.Printf("| %s | %s | %s | %s |\n",
			pad(j.ODEJobID, idW), pad(string(j.Target), targetW),
			pad(j.State, stateW), pad(j.SubmittedAt.Local().Format(timeLayout), timeW))
	}
	fmt.Print(sep)
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
