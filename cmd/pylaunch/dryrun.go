// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/pylaunch/pylaunch/internal/launcher"
)

// renderDryRun prints the launch plan: where the project is, the state of its
// environment and the commands a real launch would run.
func renderDryRun(w io.Writer, plan launcher.Plan) {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Project root:"), plan.Root.Dir)
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Entry script:"), plan.Root.Entry)
	if plan.Project != nil {
		fmt.Fprintf(w, "  %s %s (%d dependencies)\n", KeyStyle.Render("Project:"), plan.Project.DisplayName(), len(plan.Project.Dependencies))
	}

	envState := SuccessStyle.Render("present")
	if !plan.EnvExists {
		envState = WarningStyle.Render("missing, will be created")
	}
	fmt.Fprintf(w, "  %s %s (%s)\n", KeyStyle.Render("Environment:"), plan.EnvPath, envState)

	interpState := SuccessStyle.Render("present")
	if !plan.InterpreterExists {
		interpState = SubtitleStyle.Render("not yet present")
	}
	fmt.Fprintf(w, "  %s %s (%s)\n", KeyStyle.Render("Interpreter:"), plan.Interpreter, interpState)

	fmt.Fprintln(w)
	fmt.Fprintln(w, KeyStyle.Render("  Commands:"))
	for i, c := range plan.Commands {
		fmt.Fprintf(w, "    %d. %s\n", i+1, CmdStyle.Render(c.String()))
	}
	fmt.Fprintln(w)
}
