// Command igk is the Intent Governance Kernel CLI: intent registry
// inspection, trace ledger queries, and a standalone harness for running
// the Hook Engine against a single simulated tool call.
package main

func main() {
	Execute()
}
