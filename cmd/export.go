package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/emicklei/dot"
	"github.com/spf13/cobra"

	"github.com/metal-toolbox/fleetdash/internal/classify"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

type exportFlags struct {
	mermaid bool
	dot     bool
	json    bool
}

var (
	exportFlagSet = &exportFlags{}
)

var cmdExportPolicy = &cobra.Command{
	Use:   "export-policy [--mermaid|--dot|--json]",
	Short: "Export the device status policy as a decision graph",
	Run: func(_ *cobra.Command, _ []string) {
		exportPolicy()
	},
}

func nodeID(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// policyGraph returns the status rule chain, each rule either decides the status or defers to the next.
func policyGraph(p classify.Policy) *dot.Graph {
	g := dot.NewGraph(dot.Directed)

	statuses := map[model.Status]dot.Node{}
	for _, s := range model.Statuses() {
		statuses[s] = g.Node(string(s))
	}

	// reasons are rendered for a device that checked in today
	today := 0
	in := classify.Input{DaysSinceUpdate: &today}

	prev := g.Node("device")
	label := ""

	for _, rule := range p.Rules() {
		n := g.Node(nodeID(rule.Name)).Label(rule.Name)
		g.Edge(prev, n, label)
		g.Edge(n, statuses[rule.Status], rule.Reason(p, in))

		prev = n
		label = "no match"
	}

	g.Edge(prev, statuses[model.StatusUnknown], label)

	return g
}

func exportPolicy() {
	fleetdash := newApp(model.AppKindClient)

	policy := fleetdash.Config.Policy.WithDefaults()

	switch {
	case exportFlagSet.json:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(policy); err != nil {
			log.Fatal(err)
		}
	case exportFlagSet.dot:
		fmt.Println(policyGraph(policy).String())
	case exportFlagSet.mermaid:
		fmt.Println(dot.MermaidGraph(policyGraph(policy), dot.MermaidTopDown))
	default:
		log.Println("expected one of --mermaid, --dot or --json")
		os.Exit(1)
	}
}

func init() {
	cmdExportPolicy.PersistentFlags().BoolVarP(&exportFlagSet.mermaid, "mermaid", "", true, "export policy in mermaid format")
	cmdExportPolicy.PersistentFlags().BoolVarP(&exportFlagSet.dot, "dot", "", false, "export policy in graphviz dot format")
	cmdExportPolicy.PersistentFlags().BoolVarP(&exportFlagSet.json, "json", "", false, "export policy thresholds and OS rules in the JSON format")

	rootCmd.AddCommand(cmdExportPolicy)
}
