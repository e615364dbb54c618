// Package main runs the token transaction builder service: a stateless
// HTTP API that assembles unsigned mint-creation transactions for the
// caller's wallet to sign and broadcast.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	solanago "github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/assembler"
	"solana-token-forge/internal/fees"
	"solana-token-forge/internal/httpapi"
	"solana-token-forge/internal/ipfs"
	"solana-token-forge/internal/service"
	"solana-token-forge/internal/solana"
)

// DefaultPlatformWallet receives service fees unless overridden.
const DefaultPlatformWallet = "A1YrqK6SUgr1mKDLx88sy992BCx4EAGSkbAsre34tgPz"

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	rpcEndpoint := flag.String("rpc-endpoint", os.Getenv("SOLANA_RPC_ENDPOINT"), "Solana RPC HTTP endpoint")
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	platformWallet := flag.String("platform-wallet", envOr("PLATFORM_WALLET", DefaultPlatformWallet), "Platform fee wallet address")
	baseFee := flag.Uint64("base-fee", envUint("BASE_FEE_LAMPORTS", 0), "Base platform fee in lamports (0 = default)")
	featureFee := flag.Uint64("feature-fee", envUint("FEATURE_FEE_LAMPORTS", 0), "Per-feature platform fee in lamports (0 = default)")
	vanityAttempts := flag.Uint64("vanity-max-attempts", envUint("VANITY_MAX_ATTEMPTS", 0), "Vanity search attempt budget (0 = default)")
	rpcTimeout := flag.Duration("rpc-timeout", 30*time.Second, "Per-call RPC timeout")
	ipfsJWT := flag.String("ipfs-jwt", os.Getenv("PINATA_JWT"), "Pinata JWT for image and metadata pinning (empty disables uploads)")
	ipfsGateway := flag.String("ipfs-gateway", envOr("IPFS_GATEWAY", ipfs.DefaultGateway), "IPFS gateway prefix for returned URIs")
	verbose := flag.Bool("verbose", false, "Verbose pipeline logging")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *rpcEndpoint == "" {
		logger.Fatal("--rpc-endpoint is required")
	}
	wallet, err := solanago.PublicKeyFromBase58(*platformWallet)
	if err != nil {
		logger.Fatalf("Invalid platform wallet %q: %v", *platformWallet, err)
	}

	rpc := solana.NewHTTPClient(*rpcEndpoint, solana.WithTimeout(*rpcTimeout))

	svc := service.New(service.Options{
		RPC:               rpc,
		Calculator:        fees.NewCalculator(wallet, *baseFee, *featureFee),
		Assembler:         assembler.New(rpc),
		VanityMaxAttempts: *vanityAttempts,
		Verbose:           *verbose,
	})

	var pins *ipfs.Client
	if *ipfsJWT != "" {
		pins = ipfs.NewClient(*ipfsJWT, ipfs.WithGateway(*ipfsGateway))
		logger.Printf("IPFS uploads enabled (gateway: %s)", *ipfsGateway)
	}

	mux := http.NewServeMux()
	httpapi.NewHandler(svc, pins, logger).Register(mux)

	server := &http.Server{
		Addr:         *listenAddr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // vanity searches can take a while
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	logger.Printf("Listening on %s (rpc: %s, platform wallet: %s)", *listenAddr, *rpcEndpoint, wallet)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// envOr returns the environment value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envUint parses an unsigned environment value, falling back on absence or
// parse failure.
func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
