// Package service provides E2E orchestration of one transaction build.
// It coordinates: validation → address generation → distribution →
// pricing → instruction building → assembly.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/assembler"
	"solana-token-forge/internal/builder"
	"solana-token-forge/internal/distribution"
	"solana-token-forge/internal/domain"
	"solana-token-forge/internal/extensions"
	"solana-token-forge/internal/fees"
	"solana-token-forge/internal/metadata"
	"solana-token-forge/internal/observability"
	sol "solana-token-forge/internal/solana"
	"solana-token-forge/internal/vanity"
)

// Service coordinates the full build pipeline. It holds no per-request
// state; every build is a pure function of the request and chain state.
type Service struct {
	rpc        sol.RPCClient
	calculator *fees.Calculator
	assembler  *assembler.Assembler

	vanityMaxAttempts uint64
	verbose           bool
}

// Options for creating a Service.
type Options struct {
	// Required collaborators
	RPC        sol.RPCClient
	Calculator *fees.Calculator
	Assembler  *assembler.Assembler

	// VanityMaxAttempts bounds each vanity search; zero uses the
	// generator default.
	VanityMaxAttempts uint64
	Verbose           bool
}

// New creates a new Service.
func New(opts Options) *Service {
	return &Service{
		rpc:               opts.RPC,
		calculator:        opts.Calculator,
		assembler:         opts.Assembler,
		vanityMaxAttempts: opts.VanityMaxAttempts,
		verbose:           opts.Verbose,
	}
}

// CreateTransaction runs the full pipeline for one request.
// Phases:
//  1. Validate and parse the request
//  2. Resolve the feature configuration
//  3. Generate the mint keypair (vanity search when constrained)
//  4. Resolve the supply distribution
//  5. Price fees and pre-check payer funds
//  6. Build the instruction plan
//  7. Assemble, partially sign and serialize
func (s *Service) CreateTransaction(ctx context.Context, req domain.MintRequest) (*domain.TransactionEnvelope, error) {
	start := time.Now()
	env, stats, err := s.createTransaction(ctx, req)
	if err != nil {
		observability.RecordBuildError(errorKind(err))
		return nil, err
	}
	observability.RecordBuild(env.TokenProgram, time.Since(start).Seconds(), stats.instructions, stats.sizeBytes)
	return env, nil
}

// buildStats carries the plan and wire dimensions of a successful build for
// the metrics sink; the envelope itself only exposes the base64 form.
type buildStats struct {
	instructions int
	sizeBytes    int
}

func (s *Service) createTransaction(ctx context.Context, req domain.MintRequest) (*domain.TransactionEnvelope, buildStats, error) {
	// Phase 1: validation
	parsed, err := validateRequest(&req)
	if err != nil {
		return nil, buildStats{}, err
	}
	s.log("validated request: program=%s decimals=%d", parsed.features.TokenProgram, req.Decimals)

	// Phase 2 is folded into validation: parsed.features is the resolved
	// configuration.

	// Phase 3: mint keypair
	mint, err := s.generateMint(ctx, req.AddressPrefix, req.AddressSuffix)
	if err != nil {
		return nil, buildStats{}, err
	}
	s.log("mint address %s after %d attempts", mint.PublicKey(), mint.Attempts)

	// Phase 4: distribution
	dist, err := s.resolveDistribution(&req, parsed)
	if err != nil {
		return nil, buildStats{}, err
	}

	// Phase 5: pricing
	platformFee, _ := s.calculator.PlatformFee(parsed.features)
	observability.RecordFeeQuote()

	// Phase 6: instruction plan
	mintSpace, mintRentSize := mintSizes(parsed, mint.PublicKey())
	mintRent, err := s.rpc.GetMinimumBalanceForRentExemption(ctx, mintRentSize)
	if err != nil {
		return nil, buildStats{}, fmt.Errorf("mint rent: %w", err)
	}

	plan, err := builder.Build(ctx, s.rpc, builder.Params{
		Payer:              parsed.payer,
		Mint:               mint.PublicKey(),
		MintAuthority:      parsed.mintAuthority,
		UpdateAuthority:    parsed.payer,
		Decimals:           req.Decimals,
		Features:           parsed.features,
		Distribution:       dist,
		Metadata:           parsed.metadata,
		RoyaltyBasisPoints: req.RoyaltyBasisPoints,
		Creators:           parsed.creators,
		PlatformWallet:     s.calculator.PlatformWallet(),
		PlatformFee:        platformFee,
		MintRent:           mintRent,
		MintSpace:          mintSpace,
	})
	if err != nil {
		return nil, buildStats{}, err
	}

	// The plan knows how many token accounts it creates; price those and
	// pre-check the payer before serializing anything.
	breakdown, err := s.calculator.Estimate(ctx, s.rpc, parsed.features, mintRentSize, countRole(plan, domain.RoleCreateTokenAccount))
	if err != nil {
		return nil, buildStats{}, err
	}
	if err := s.calculator.CheckFunds(ctx, s.rpc, parsed.payer, breakdown.TotalEstimated); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			observability.RecordFundsCheckFailure()
		}
		return nil, buildStats{}, err
	}

	// Phase 7: assembly
	res, err := s.assembler.Assemble(ctx, plan, parsed.payer, mint)
	if err != nil {
		return nil, buildStats{}, err
	}
	s.log("assembled %d instructions, %d bytes", len(plan.Instructions), res.Size)

	stats := buildStats{instructions: len(plan.Instructions), sizeBytes: res.Size}
	return buildEnvelope(&req, parsed, plan, res, dist, breakdown), stats, nil
}

// generateMint runs the vanity search on a worker goroutine so a slow
// grind can be abandoned the moment the request context dies.
func (s *Service) generateMint(ctx context.Context, prefix, suffix string) (domain.MintKeypair, error) {
	if prefix == "" && suffix == "" {
		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return domain.MintKeypair{}, fmt.Errorf("generate mint keypair: %w", err)
		}
		return domain.MintKeypair{PrivateKey: key, Attempts: 1}, nil
	}

	type result struct {
		kp  domain.MintKeypair
		err error
	}
	start := time.Now()
	ch := make(chan result, 1)
	go func() {
		kp, err := vanity.Generate(ctx, prefix, suffix, s.vanityMaxAttempts)
		ch <- result{kp: kp, err: err}
	}()

	select {
	case <-ctx.Done():
		return domain.MintKeypair{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return domain.MintKeypair{}, r.err
		}
		observability.RecordVanitySearch(r.kp.Attempts, time.Since(start).Seconds())
		return r.kp, nil
	}
}

func (s *Service) resolveDistribution(req *domain.MintRequest, parsed *parsedRequest) (domain.Distribution, error) {
	if req.MultiWallet() {
		return distribution.Resolve(parsed.supply, req.Distributions)
	}
	recipient := parsed.payer
	if req.Recipient != "" {
		r, err := domain.ParseWalletAddress(req.Recipient)
		if err != nil {
			return domain.Distribution{}, fmt.Errorf("recipient: %w", err)
		}
		recipient = r
	}
	return domain.Single(recipient, parsed.supply), nil
}

// PreviewAddress grinds a sample vanity address without building anything.
// The keypair is discarded; the preview only demonstrates feasibility and
// cost of the constraint.
func (s *Service) PreviewAddress(ctx context.Context, prefix, suffix string) (address string, attempts uint64, err error) {
	kp, err := s.generateMint(ctx, prefix, suffix)
	if err != nil {
		return "", 0, err
	}
	return kp.PublicKey().String(), kp.Attempts, nil
}

// Extensions returns the Token-2022 extension catalog.
func (s *Service) Extensions() []extensions.Extension {
	return extensions.Catalog()
}

// mintSizes returns the allocated byte size of the mint account and the
// byte size its rent must cover. They differ only for Token-2022, where
// the metadata extension grows the account after allocation.
func mintSizes(parsed *parsedRequest, mint solana.PublicKey) (space, rentSize uint64) {
	if parsed.features.TokenProgram != domain.TokenProgram2022 {
		return extensions.BaseMintSize, extensions.BaseMintSize
	}
	space = extensions.MintAccountSize(parsed.features.Extensions)
	packed := metadata.Pack(parsed.payer, mint, parsed.metadata)
	return space, extensions.MetadataRentSize(space, len(packed))
}

func countRole(plan *domain.InstructionPlan, role domain.InstructionRole) int {
	n := 0
	for _, pi := range plan.Instructions {
		if pi.Role == role {
			n++
		}
	}
	return n
}

func buildEnvelope(req *domain.MintRequest, parsed *parsedRequest, plan *domain.InstructionPlan, res *assembler.Result, dist domain.Distribution, breakdown domain.FeeBreakdown) *domain.TransactionEnvelope {
	accounts := make([]string, len(plan.TokenAccounts))
	for i, a := range plan.TokenAccounts {
		accounts[i] = a.String()
	}

	mintAuth := domain.AuthorityState(parsed.mintAuthority.String())
	if parsed.features.RevokeMint {
		mintAuth = domain.AuthorityRevoked
	}
	updateAuth := domain.AuthorityState(parsed.payer.String())
	if parsed.features.RevokeUpdate {
		updateAuth = domain.AuthorityRevoked
	}
	freezeAuth := domain.AuthorityState(parsed.mintAuthority.String())
	switch {
	case parsed.features.RevokeFreeze:
		freezeAuth = domain.AuthorityRevoked
	case parsed.features.TokenProgram == domain.TokenProgram2022:
		// Token-2022 mints are created without a freeze authority.
		freezeAuth = domain.AuthorityNone
	}

	return &domain.TransactionEnvelope{
		SerializedTransaction: res.SerializedTransaction,
		Blockhash:             res.Blockhash,
		LastValidBlockHeight:  res.LastValidBlockHeight,
		MintAddress:           plan.Mint.String(),
		TokenAccounts:         accounts,
		MetadataAddress:       plan.MetadataAccount.String(),
		Supply:                fmt.Sprintf("%d", dist.Total),
		Decimals:              req.Decimals,
		MintAuthority:         mintAuth,
		UpdateAuthority:       updateAuth,
		FreezeAuthority:       freezeAuth,
		Fees:                  breakdown,
		Features:              parsed.features.Summary(),
		TokenProgram:          string(parsed.features.TokenProgram),
	}
}

func (s *Service) log(format string, args ...interface{}) {
	if s.verbose {
		log.Printf("[service] "+format, args...)
	}
}

// errorKind maps a pipeline error to its taxonomy label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAddressGenerationTimeout):
		return "address_generation_timeout"
	case errors.Is(err, domain.ErrEmptyDistribution), errors.Is(err, domain.ErrDistributionPercentage):
		return "distribution"
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return "network_unavailable"
	case errors.Is(err, domain.ErrMetadataAttachment):
		return "metadata"
	case errors.Is(err, domain.ErrSerialization):
		return "serialization"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
