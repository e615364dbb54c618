package service

import (
	"fmt"
	"net/url"

	"github.com/gagliardetto/solana-go"

	"solana-token-forge/internal/domain"
	"solana-token-forge/internal/extensions"
	"solana-token-forge/internal/instructions"
	"solana-token-forge/internal/metadata"
	"solana-token-forge/internal/vanity"
)

// Field limits. Name and symbol bounds follow the stricter of the two
// metadata variants so one request shape works for both.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
	MaxDecimals     = 18
	MaxRoyaltyBps   = 10_000
)

// parsedRequest is the validated, parsed view of a MintRequest.
type parsedRequest struct {
	payer         solana.PublicKey
	mintAuthority solana.PublicKey
	supply        uint64 // base units
	features      domain.FeatureConfig
	metadata      metadata.Fields
	creators      []instructions.Creator
}

// validateRequest checks every field and resolves the feature
// configuration. All failures wrap ErrValidation.
func validateRequest(req *domain.MintRequest) (*parsedRequest, error) {
	payer, err := domain.ParseWalletAddress(req.Payer)
	if err != nil {
		return nil, fmt.Errorf("payer: %w", err)
	}

	if req.Name == "" || len(req.Name) > MaxNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", domain.ErrValidation, MaxNameLength)
	}
	if req.Symbol == "" || len(req.Symbol) > MaxSymbolLength {
		return nil, fmt.Errorf("%w: symbol must be 1..%d characters", domain.ErrValidation, MaxSymbolLength)
	}
	if len(req.MetadataURI) > MaxURILength {
		return nil, fmt.Errorf("%w: metadata URI exceeds %d characters", domain.ErrValidation, MaxURILength)
	}
	if req.MetadataURI != "" {
		if _, err := url.ParseRequestURI(req.MetadataURI); err != nil {
			return nil, fmt.Errorf("%w: metadata URI: %v", domain.ErrValidation, err)
		}
	}
	if req.Decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: decimals %d exceeds %d", domain.ErrValidation, req.Decimals, MaxDecimals)
	}
	if req.RoyaltyBasisPoints > MaxRoyaltyBps {
		return nil, fmt.Errorf("%w: royalty %d exceeds %d basis points", domain.ErrValidation, req.RoyaltyBasisPoints, MaxRoyaltyBps)
	}

	switch req.Priority {
	case "", domain.PriorityNone, domain.PriorityLow, domain.PriorityHigh, domain.PriorityVeryHigh:
	default:
		return nil, fmt.Errorf("%w: unknown priority level %q", domain.ErrValidation, req.Priority)
	}

	program := req.TokenProgram
	switch program {
	case "":
		program = domain.TokenProgramClassic
	case domain.TokenProgramClassic, domain.TokenProgram2022:
	default:
		return nil, fmt.Errorf("%w: unknown token program %q", domain.ErrValidation, req.TokenProgram)
	}
	if program != domain.TokenProgram2022 && len(req.Extensions) > 0 {
		return nil, fmt.Errorf("%w: extensions require the token-2022 program", domain.ErrValidation)
	}

	if err := vanity.ValidateAffixes(req.AddressPrefix, req.AddressSuffix); err != nil {
		return nil, err
	}

	supply, err := toBaseUnits(req)
	if err != nil {
		return nil, err
	}

	mintAuthority := payer
	if req.MintAuthority != "" {
		mintAuthority, err = domain.ParseWalletAddress(req.MintAuthority)
		if err != nil {
			return nil, fmt.Errorf("mint authority: %w", err)
		}
	}

	features := domain.FeatureConfig{
		TokenProgram:     program,
		UseCustomAddress: req.UseCustomAddress(),
		MultiWallet:      req.MultiWallet(),
		CustomCreator:    req.CustomCreator(),
		RevokeFreeze:     req.RevokeFreezeAuthority,
		RevokeMint:       req.RevokeMintAuthority,
		RevokeUpdate:     req.RevokeUpdateAuthority,
		Extensions:       extensions.Resolve(req.Extensions),
		Priority:         req.Priority,
	}

	var creators []instructions.Creator
	if program == domain.TokenProgramClassic {
		// The side-registry variant records the creator; it is only marked
		// verified when the creator signs, which only the payer does.
		creators = []instructions.Creator{{
			Address:  mintAuthority,
			Verified: mintAuthority.Equals(payer),
			Share:    100,
		}}
	}

	return &parsedRequest{
		payer:         payer,
		mintAuthority: mintAuthority,
		supply:        supply,
		features:      features,
		metadata: metadata.Fields{
			Name:   req.Name,
			Symbol: req.Symbol,
			URI:    req.MetadataURI,
		},
		creators: creators,
	}, nil
}

// toBaseUnits converts the human-unit amount to base units exactly.
// Fractional remainders below the decimal resolution are rejected rather
// than silently truncated.
func toBaseUnits(req *domain.MintRequest) (uint64, error) {
	if !req.Amount.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	shifted := req.Amount.Shift(int32(req.Decimals))
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: amount %s has more than %d decimal places",
			domain.ErrValidation, req.Amount, req.Decimals)
	}
	units := shifted.BigInt()
	if !units.IsUint64() {
		return 0, fmt.Errorf("%w: supply %s exceeds the representable range", domain.ErrValidation, shifted)
	}
	return units.Uint64(), nil
}
