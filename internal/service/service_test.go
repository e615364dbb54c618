package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-token-forge/internal/assembler"
	"solana-token-forge/internal/domain"
	"solana-token-forge/internal/extensions"
	"solana-token-forge/internal/fees"
	"solana-token-forge/internal/observability"
	"solana-token-forge/internal/solana/stub"
)

const tenSOL = 10 * fees.LamportsPerSOL

func newService(t *testing.T, rpc *stub.RPCClient) (*Service, solana.PrivateKey) {
	t.Helper()
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	rpc.Balances[payer.PublicKey().String()] = tenSOL

	platform, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	svc := New(Options{
		RPC:        rpc,
		Calculator: fees.NewCalculator(platform.PublicKey(), 0, 0),
		Assembler:  assembler.New(rpc, assembler.WithRetryDelay(0)),
	})
	return svc, payer
}

func validRequest(payer solana.PrivateKey) domain.MintRequest {
	return domain.MintRequest{
		Payer:       payer.PublicKey().String(),
		Amount:      decimal.NewFromInt(1_000_000),
		Decimals:    6,
		Name:        "Forge Token",
		Symbol:      "FRG",
		MetadataURI: "https://example.com/meta.json",
	}
}

func TestCreateTransaction_Classic(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)

	env, err := svc.CreateTransaction(context.Background(), validRequest(payer))
	require.NoError(t, err)

	assert.NotEmpty(t, env.SerializedTransaction)
	assert.Equal(t, rpc.Hash.Blockhash, env.Blockhash)
	assert.Equal(t, rpc.Hash.LastValidBlockHeight, env.LastValidBlockHeight)
	assert.NotEmpty(t, env.MintAddress)
	assert.Len(t, env.TokenAccounts, 1)
	assert.NotEmpty(t, env.MetadataAddress)
	assert.NotEqual(t, env.MintAddress, env.MetadataAddress, "classic metadata lives in a separate PDA")
	assert.Equal(t, "1000000000000", env.Supply, "10^6 tokens at 6 decimals")
	assert.Equal(t, string(domain.TokenProgramClassic), env.TokenProgram)

	// No revocations requested: all authorities remain with the payer.
	assert.Equal(t, domain.AuthorityState(payer.PublicKey().String()), env.MintAuthority)
	assert.Equal(t, domain.AuthorityState(payer.PublicKey().String()), env.UpdateAuthority)
	assert.Equal(t, domain.AuthorityState(payer.PublicKey().String()), env.FreezeAuthority)
}

func TestCreateTransaction_Token2022FreezeAuthorityNone(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)

	req := validRequest(payer)
	req.TokenProgram = domain.TokenProgram2022

	env, err := svc.CreateTransaction(context.Background(), req)
	require.NoError(t, err)

	// Token-2022 mints are created without a freeze authority, so there is
	// nothing to revoke and nothing to report an address for.
	assert.Equal(t, domain.AuthorityNone, env.FreezeAuthority)
	assert.Equal(t, domain.AuthorityState(payer.PublicKey().String()), env.MintAuthority)
}

func histogramState(t *testing.T, h prometheus.Histogram) (count uint64, sum float64) {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestCreateTransaction_BuildMetricsDimensions(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)

	icCount, icSum := histogramState(t, observability.DefaultMetrics.InstructionCount)
	szCount, szSum := histogramState(t, observability.DefaultMetrics.TransactionSize)

	env, err := svc.CreateTransaction(context.Background(), validRequest(payer))
	require.NoError(t, err)

	icCountAfter, icSumAfter := histogramState(t, observability.DefaultMetrics.InstructionCount)
	require.Equal(t, icCount+1, icCountAfter)
	// Fee transfer, create-account, init-mint, metadata, token account,
	// mint-to.
	assert.Equal(t, float64(6), icSumAfter-icSum, "instruction count reflects the plan, not the token accounts")

	raw, err := base64.StdEncoding.DecodeString(env.SerializedTransaction)
	require.NoError(t, err)
	szCountAfter, szSumAfter := histogramState(t, observability.DefaultMetrics.TransactionSize)
	require.Equal(t, szCount+1, szCountAfter)
	assert.Equal(t, float64(len(raw)), szSumAfter-szSum, "size reflects serialized bytes, not the base64 length")
}

func TestCreateTransaction_Token2022(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)

	req := validRequest(payer)
	req.TokenProgram = domain.TokenProgram2022
	req.Extensions = []string{extensions.NonTransferable, "bogus-extension"}
	req.RevokeMintAuthority = true
	req.RevokeFreezeAuthority = true

	env, err := svc.CreateTransaction(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, env.MintAddress, env.MetadataAddress, "self-contained metadata lives in the mint")
	assert.Equal(t, domain.AuthorityRevoked, env.MintAuthority)
	assert.Equal(t, domain.AuthorityRevoked, env.FreezeAuthority)
	assert.Contains(t, env.Features, "extension:"+extensions.NonTransferable)
	assert.NotContains(t, env.Features, "extension:bogus-extension", "unknown extensions are dropped, not echoed")
}

func TestCreateTransaction_MultiWallet(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)

	a, _ := solana.NewRandomPrivateKey()
	b, _ := solana.NewRandomPrivateKey()
	req := validRequest(payer)
	req.Distributions = []domain.DistributionInput{
		{Recipient: a.PublicKey().String(), Percentage: decimal.NewFromInt(60)},
		{Recipient: b.PublicKey().String(), Percentage: decimal.NewFromInt(40)},
	}

	env, err := svc.CreateTransaction(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, env.TokenAccounts, 2)
	assert.Contains(t, env.Features, "multiWallet")
	assert.Equal(t, env.Fees.FeatureFees["multiWallet"], uint64(fees.DefaultFeatureFee))
}

func TestCreateTransaction_InsufficientFunds(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)
	rpc.Balances[payer.PublicKey().String()] = 1_000 // far below any estimate

	_, err := svc.CreateTransaction(context.Background(), validRequest(payer))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestCreateTransaction_ValidationFailures(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)

	cases := []struct {
		name   string
		mutate func(*domain.MintRequest)
	}{
		{"bad payer", func(r *domain.MintRequest) { r.Payer = "nope" }},
		{"empty name", func(r *domain.MintRequest) { r.Name = "" }},
		{"long symbol", func(r *domain.MintRequest) { r.Symbol = strings.Repeat("X", 11) }},
		{"bad uri", func(r *domain.MintRequest) { r.MetadataURI = "not a uri" }},
		{"decimals", func(r *domain.MintRequest) { r.Decimals = 19 }},
		{"zero amount", func(r *domain.MintRequest) { r.Amount = decimal.Zero }},
		{"fractional dust", func(r *domain.MintRequest) {
			r.Decimals = 2
			r.Amount = decimal.RequireFromString("1.001")
		}},
		{"royalty", func(r *domain.MintRequest) { r.RoyaltyBasisPoints = 10_001 }},
		{"priority", func(r *domain.MintRequest) { r.Priority = "turbo" }},
		{"program", func(r *domain.MintRequest) { r.TokenProgram = "token-2023" }},
		{"extensions on classic", func(r *domain.MintRequest) { r.Extensions = []string{extensions.NonTransferable} }},
		{"long prefix", func(r *domain.MintRequest) { r.AddressPrefix = "abcde" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(payer)
			tc.mutate(&req)
			_, err := svc.CreateTransaction(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateTransaction_NetworkUnavailable(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)
	rpc.FailBlockhash = 3

	_, err := svc.CreateTransaction(context.Background(), validRequest(payer))
	assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
	assert.Equal(t, 3, rpc.BlockhashCalls)
}

func TestCreateTransaction_CustomCreator(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, payer := newService(t, rpc)

	creator, _ := solana.NewRandomPrivateKey()
	req := validRequest(payer)
	req.MintAuthority = creator.PublicKey().String()

	env, err := svc.CreateTransaction(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, env.Features, "customCreator")
	assert.Equal(t, domain.AuthorityState(creator.PublicKey().String()), env.MintAuthority)
}

func TestPreviewAddress(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, _ := newService(t, rpc)

	addr, attempts, err := svc.PreviewAddress(context.Background(), "a", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.ToLower(addr), "a"), "address %s", addr)
	assert.NotZero(t, attempts)
}

func TestExtensionsCatalog(t *testing.T) {
	rpc := stub.NewRPCClient()
	svc, _ := newService(t, rpc)

	cat := svc.Extensions()
	require.NotEmpty(t, cat)
	ids := make([]string, len(cat))
	for i, e := range cat {
		ids[i] = e.ID
	}
	assert.Contains(t, ids, extensions.PermanentDelegate)
}
