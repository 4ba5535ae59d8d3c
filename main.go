// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/pylaunch/pylaunch/cmd/pylaunch"

func main() {
	cmd.Execute()
}
