package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/steg-tools-mcp/internal/config"
	"github.com/ironsheep/steg-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var configPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v", "version":
			fmt.Printf("steg-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "--config", "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a file path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n\n", args[i])
			printUsage()
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv(configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if Version != "dev" {
		server.Version = Version
	}
	if cfg.Debug() {
		log.Printf("Steg MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("carrier formats %v, output prefix %q, message limit %d", cfg.SupportedFormats, cfg.OutputPrefix, cfg.MaxMessageLength)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("steg-tools-mcp - MCP server for LSB image steganography")
	fmt.Println()
	fmt.Println("Usage: steg-tools-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config, -c <path>  Load settings from a YAML file")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  STEG_MCP_CONFIG=<path>            YAML settings file")
	fmt.Println("  STEG_MCP_LOG_LEVEL=debug          Enable debug logging")
	fmt.Println("  STEG_MCP_OUTPUT_PREFIX=encoded_   Prefix for default output names")
	fmt.Println("  STEG_MCP_MAX_MESSAGE_LENGTH=10000 Text message limit in characters")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
