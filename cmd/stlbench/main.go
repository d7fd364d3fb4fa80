// Command stlbench drives the containers of this module through scripted
// workloads, checks every result against a slice model and reports timing
// and allocation statistics.
package main

func main() {
	execute()
}
