// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/hostinv/hostinv/cmd/hostinv"

func main() {
	cmd.Execute()
}
