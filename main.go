package main

import "aadhaar-records/cmd"

func main() {
	cmd.Execute()
}
