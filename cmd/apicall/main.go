// Command apicall sends one JSON API call through the restkit client and
// prints the decoded response or the classified failure.
//
//	apicall get /users/42 --base-url https://api.example.com
//	apicall post /users -d '{name: "Ann", email: "ann@x.com",}' -H X-Trace=1
//
// Configuration is read from apicall.yml, .env and APICALL_* environment
// variables; flags override both.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
