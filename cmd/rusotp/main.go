// Command rusotp is a command-line demonstrator for the otp/otpauth core.
package main

import "github.com/dnrvs/rusotp-go/cmd/otpcmd"

func main() {
	otpcmd.Execute()
}
