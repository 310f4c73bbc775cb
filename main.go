// SPDX-License-Identifier: MPL-2.0

package main

import cmd "arxmlmerge/cmd/arxmlmerge"

func main() {
	cmd.Execute()
}
