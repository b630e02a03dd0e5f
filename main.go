//	@title			Tezca Gateway API
//	@version		1.0
//	@description	SSO authentication gateway for public content sites

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	SessionAuth
//	@in							cookie
//	@name						session
//	@description				Signed session credential issued after SSO login

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/madfam-org/tezca-gateway/internal/bootstrap"
	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/version"

	_ "github.com/madfam-org/tezca-gateway/api" // swagger docs
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		version.PrintVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "server":
		runServer()
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Usage: %s [OPTIONS] COMMAND\n\n", os.Args[0])
	fmt.Println("SSO authentication gateway")
	fmt.Println("\nCommands:")
	fmt.Println("  server    Start the gateway")
	fmt.Println("\nOptions:")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println("  -h, --help       Show this help message")
}

func runServer() {
	cfg := config.Load()

	if err := bootstrap.Run(context.Background(), cfg); err != nil {
		log.Fatalf("Failed to start gateway: %v", err)
	}
}
