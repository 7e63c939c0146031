package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/igk/kernel/internal/config"
	igkhooks "github.com/igk/kernel/internal/hooks"
	"github.com/igk/kernel/internal/igkstyle"
	"github.com/igk/kernel/internal/intent"
	"github.com/igk/kernel/internal/session"
	"github.com/igk/kernel/internal/trace"
)

var (
	hooksRunTool         string
	hooksRunPath         string
	hooksRunContent      string
	hooksRunExpectedHash string
	hooksRunIntentID     string
	hooksRunAutoApprove  bool
	hooksDoctorJSON      bool
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Drive the Hook Engine directly",
	Long: `Runs the kernel's pre/post hook pipeline against one simulated tool
call, or reports on the configuration the pipeline would use.

Examples:
  igk hooks run --tool write_to_file --path src/auth/login.ts --content "..."
  igk hooks doctor`,
}

func init() {
	rootCmd.AddCommand(hooksCmd)
	hooksCmd.AddCommand(hooksRunCmd, hooksDoctorCmd)

	hooksRunCmd.Flags().StringVar(&hooksRunTool, "tool", "", "Tool name (required)")
	hooksRunCmd.Flags().StringVar(&hooksRunPath, "path", "", "Target path")
	hooksRunCmd.Flags().StringVar(&hooksRunContent, "content", "", "Write content / diff payload")
	hooksRunCmd.Flags().StringVar(&hooksRunExpectedHash, "expected-hash", "", "CAS hash the caller expects the file to have")
	hooksRunCmd.Flags().StringVar(&hooksRunIntentID, "intent", "", "Active intent id for this call")
	hooksRunCmd.Flags().BoolVar(&hooksRunAutoApprove, "auto-approve", false, "Skip the interactive modal and approve every DESTRUCTIVE call")
	_ = hooksRunCmd.MarkFlagRequired("tool")

	hooksDoctorCmd.Flags().BoolVar(&hooksDoctorJSON, "json", false, "Output results as JSON")
}

var hooksRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulated tool call through the canonical pipeline",
	RunE:  runHooksRun,
}

var hooksDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check workspace health: registry, bypass list, ledger, hook order",
	Long: `Validates that the pieces the Hook Engine depends on are in a usable
state: the intent registry parses, .intentignore is readable, the trace
ledger is valid JSONL, and reports the canonical hook registration order.

Examples:
  igk hooks doctor
  igk hooks doctor --json`,
	RunE: runHooksDoctor,
}

func runHooksRun(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	engine := igkhooks.NewEngine()
	engine.Register(igkhooks.NewGatekeeper())
	engine.Register(igkhooks.NewOptimisticLock())
	engine.Register(igkhooks.NewScopeEnforcement(root))
	engine.Register(igkhooks.NewAuthorization(terminalApprove))
	engine.Register(igkhooks.NewIntentUpdate(root))
	engine.Register(igkhooks.NewTraceWriter(root))

	task := &session.TaskSession{ActiveIntentID: hooksRunIntentID}
	params := map[string]string{}
	if hooksRunPath != "" {
		params["path"] = hooksRunPath
	}
	if hooksRunContent != "" {
		params["content"] = hooksRunContent
	}
	if hooksRunExpectedHash != "" {
		params["expected_hash"] = hooksRunExpectedHash
	}

	ctx := &igkhooks.Context{
		Workspace: root,
		Task:      task,
		Tool:      &session.ToolInvocation{Tool: hooksRunTool, Params: params},
	}

	if GetDryRun() {
		fmt.Printf("would run %s through the pipeline (dry-run, no execution)\n", hooksRunTool)
		return nil
	}

	if res := engine.RunPre(ctx); res != nil {
		if res.Rejection != nil {
			fmt.Println(res.Rejection.String())
		} else {
			fmt.Println(res.Message)
		}
		return fmt.Errorf("blocked by pre-hooks")
	}

	fmt.Println("pre-hooks passed; tool would execute here")
	engine.RunPost(ctx, nil)
	fmt.Println("post-hooks ran")
	return nil
}

// terminalApprove renders the approval modal in a lipgloss-bordered box
// and reads a line of stdin as the human's decision.
func terminalApprove(message string) igkhooks.ApprovalResponse {
	if hooksRunAutoApprove {
		return igkhooks.Approved
	}

	box := igkstyle.ModalBox.Render(
		igkstyle.ToolLabel.Render(message) + "\n" +
			igkstyle.Muted.Render("Approve this call? [y/N]"),
	)
	fmt.Println(box)

	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "y" || line == "yes" {
		fmt.Println(igkstyle.Approved.Render("approved"))
		return igkhooks.Approved
	}
	fmt.Println(igkstyle.Rejected.Render("rejected"))
	return igkhooks.Rejected
}

// doctorCheck reports one health check's outcome: "pass", "warn", or "fail".
type doctorCheck struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Detail   string `json:"detail"`
	Required bool   `json:"required"`
}

type doctorOutput struct {
	Checks  []doctorCheck `json:"checks"`
	Result  string        `json:"result"` // "HEALTHY" or "UNHEALTHY"
	Summary string        `json:"summary"`
}

// gatherDoctorChecks runs every doctor check against the workspace rooted
// at root, using the already-resolved configuration rc.
func gatherDoctorChecks(root string, rc *config.ResolvedConfig) []doctorCheck {
	return []doctorCheck{
		checkIntentRegistry(root),
		checkBypassList(root, rc),
		checkTraceLedger(root),
		checkHookOrder(),
	}
}

// checkIntentRegistry verifies active_intents.yaml parses as valid YAML
// (a missing file is healthy — an empty registry is a valid starting state).
func checkIntentRegistry(root string) doctorCheck {
	intents, err := intent.NewStore(root).List()
	if err != nil {
		return doctorCheck{Name: "intent registry", Status: "fail", Detail: err.Error(), Required: true}
	}
	return doctorCheck{
		Name:     "intent registry",
		Status:   "pass",
		Detail:   fmt.Sprintf("%s parses, %d intent(s) declared", intent.RegistryRelPath, len(intents)),
		Required: true,
	}
}

// checkBypassList verifies .intentignore is readable when present. Its
// absence is a warning, not a failure: the Authorization Hook treats a
// missing bypass list as an empty one.
func checkBypassList(root string, rc *config.ResolvedConfig) doctorCheck {
	path := filepath.Join(root, rc.OrchestrationDir.Value.(string), ".intentignore")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return doctorCheck{Name: "bypass list", Status: "warn", Detail: path + " not present (no bypassed tools)", Required: false}
	}
	if err != nil {
		return doctorCheck{Name: "bypass list", Status: "fail", Detail: err.Error(), Required: false}
	}
	defer func() { _ = f.Close() }()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			lines++
		}
	}
	if err := scanner.Err(); err != nil {
		return doctorCheck{Name: "bypass list", Status: "fail", Detail: err.Error(), Required: false}
	}
	return doctorCheck{Name: "bypass list", Status: "pass", Detail: fmt.Sprintf("%s readable, %d entries", path, lines), Required: false}
}

// checkTraceLedger verifies every non-blank line in agent_trace.jsonl
// decodes as JSON, reporting the count of any that don't rather than
// silently skipping them the way Ledger.ReadAll does for query purposes.
func checkTraceLedger(root string) doctorCheck {
	ledger := trace.NewLedger(root)
	f, err := os.Open(ledger.Path)
	if os.IsNotExist(err) {
		return doctorCheck{Name: "trace ledger", Status: "pass", Detail: ledger.Path + " not yet created", Required: true}
	}
	if err != nil {
		return doctorCheck{Name: "trace ledger", Status: "fail", Detail: err.Error(), Required: true}
	}
	defer func() { _ = f.Close() }()

	total, malformed := 0, 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		total++
		var raw json.RawMessage
		if err := json.Unmarshal(line, &raw); err != nil {
			malformed++
		}
	}
	if err := scanner.Err(); err != nil {
		return doctorCheck{Name: "trace ledger", Status: "fail", Detail: err.Error(), Required: true}
	}
	if malformed > 0 {
		return doctorCheck{
			Name:     "trace ledger",
			Status:   "fail",
			Detail:   fmt.Sprintf("%d of %d lines in %s are not valid JSON", malformed, total, ledger.Path),
			Required: true,
		}
	}
	return doctorCheck{Name: "trace ledger", Status: "pass", Detail: fmt.Sprintf("%s: %d valid entries", ledger.Path, total), Required: true}
}

// checkHookOrder reports the canonical pre-hook registration order that
// `igk hooks run` wires up, so an operator can confirm it against what a
// host integration registers.
func checkHookOrder() doctorCheck {
	order := []string{"gatekeeper", "optimistic_lock", "scope_enforcement", "authorization", "intent_update", "trace_writer"}
	return doctorCheck{
		Name:     "hook order",
		Status:   "pass",
		Detail:   strings.Join(order, " -> "),
		Required: false,
	}
}

func countDoctorStatuses(checks []doctorCheck) (passes, fails, warns int) {
	for _, c := range checks {
		switch c.Status {
		case "pass":
			passes++
		case "fail":
			fails++
		case "warn":
			warns++
		}
	}
	return passes, fails, warns
}

func doctorStatusIcon(status string) string {
	switch status {
	case "pass":
		return "✓"
	case "warn":
		return "!"
	case "fail":
		return "✗"
	}
	return "?"
}

func computeDoctorResult(checks []doctorCheck) doctorOutput {
	passes, fails, warns := countDoctorStatuses(checks)
	result := "HEALTHY"
	if fails > 0 {
		result = "UNHEALTHY"
	}
	summary := fmt.Sprintf("%d/%d checks passed", passes, len(checks))
	if warns > 0 {
		summary += fmt.Sprintf(", %d warning(s)", warns)
	}
	if fails > 0 {
		summary += fmt.Sprintf(", %d failed", fails)
	}
	return doctorOutput{Checks: checks, Result: result, Summary: summary}
}

func hasRequiredDoctorFailure(checks []doctorCheck) bool {
	for _, c := range checks {
		if c.Required && c.Status == "fail" {
			return true
		}
	}
	return false
}

func runHooksDoctor(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	rc := config.Resolve(GetOutput(), GetVerbose(), "")
	output := computeDoctorResult(gatherDoctorChecks(root, rc))

	if hooksDoctorJSON {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal doctor output: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Println("igk hooks doctor")
		fmt.Println("----------------")
		maxName := 0
		for _, c := range output.Checks {
			if len(c.Name) > maxName {
				maxName = len(c.Name)
			}
		}
		for _, c := range output.Checks {
			fmt.Printf("%s %-*s  %s\n", doctorStatusIcon(c.Status), maxName, c.Name, c.Detail)
		}
		fmt.Println()
		fmt.Println(output.Summary)

		if GetVerbose() {
			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SETTING\tVALUE\tSOURCE")
			fmt.Fprintln(w, "-------\t-----\t------")
			fmt.Fprintf(w, "output\t%v\t%s\n", rc.Output.Value, rc.Output.Source)
			fmt.Fprintf(w, "verbose\t%v\t%s\n", rc.Verbose.Value, rc.Verbose.Source)
			fmt.Fprintf(w, "orchestration_dir\t%v\t%s\n", rc.OrchestrationDir.Value, rc.OrchestrationDir.Source)
			fmt.Fprintf(w, "unknown_tools_policy\t%v\t%s\n", rc.UnknownToolsPolicy.Value, rc.UnknownToolsPolicy.Source)
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}

	if hasRequiredDoctorFailure(output.Checks) {
		return fmt.Errorf("doctor failed: one or more required checks did not pass")
	}
	return nil
}
