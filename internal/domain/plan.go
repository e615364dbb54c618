package domain

import "github.com/gagliardetto/solana-go"

// InstructionRole tags each planned instruction with its logical purpose.
// The role set is closed; the builder appends variants conditionally
// instead of scattering feature checks across the assembler.
type InstructionRole string

const (
	RolePriorityFee         InstructionRole = "priority-fee"
	RoleFeeTransfer         InstructionRole = "fee-transfer"
	RoleCreateAccount       InstructionRole = "create-account"
	RoleInitExtension       InstructionRole = "init-extension"
	RoleInitMint            InstructionRole = "init-mint"
	RoleInitMetadataPointer InstructionRole = "init-metadata-pointer"
	RoleInitMetadata        InstructionRole = "init-metadata"
	RoleCreateTokenAccount  InstructionRole = "create-token-account"
	RoleMintTo              InstructionRole = "mint-to"
	RoleRevokeAuthority     InstructionRole = "revoke-authority"
	RoleNullifyUpdateAuth   InstructionRole = "nullify-update-authority"
)

// PlannedInstruction couples a low-level instruction with its role tag.
type PlannedInstruction struct {
	Role        InstructionRole
	Instruction solana.Instruction
}

// InstructionPlan is the ordered instruction sequence for one transaction.
// Ordering is load-bearing: extension initializations must precede the
// mint initialization, and the account allocation must precede everything
// that references the mint.
type InstructionPlan struct {
	Instructions []PlannedInstruction

	// Derived addresses surfaced alongside the plan.
	Mint            solana.PublicKey
	MetadataAccount solana.PublicKey
	TokenAccounts   []solana.PublicKey // one per distribution entry, in order
}

// Append adds an instruction under the given role.
func (p *InstructionPlan) Append(role InstructionRole, ix solana.Instruction) {
	p.Instructions = append(p.Instructions, PlannedInstruction{Role: role, Instruction: ix})
}

// Raw returns the untagged instruction sequence for transaction assembly.
func (p *InstructionPlan) Raw() []solana.Instruction {
	out := make([]solana.Instruction, len(p.Instructions))
	for i, pi := range p.Instructions {
		out[i] = pi.Instruction
	}
	return out
}

// Roles returns the role sequence, mainly for tests asserting ordering.
func (p *InstructionPlan) Roles() []InstructionRole {
	out := make([]InstructionRole, len(p.Instructions))
	for i, pi := range p.Instructions {
		out[i] = pi.Role
	}
	return out
}
