// Package model defines domain entities shared by the client core services.
package model

import "time"

// Role is one of the fixed set of user roles the application distinguishes.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleFinance   Role = "finance"
	RoleInventory Role = "inventory"
	RoleSupplier  Role = "supplier"
)

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RolePassenger, RoleAdmin, RoleStaff, RoleFinance, RoleInventory, RoleSupplier:
		return true
	}
	return false
}

// Channel is the user-selected login category; each channel is bound to one
// fixed backend authentication endpoint. Selecting a channel has no session
// effect until credentials are submitted.
type Channel string

const (
	ChannelPassenger Channel = "passenger"
	ChannelSupplier  Channel = "supplier"
	ChannelInventory Channel = "inventory"
	ChannelFinance   Channel = "finance"
	ChannelStaff     Channel = "staff"
)

// Valid reports whether c is a known login channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelPassenger, ChannelSupplier, ChannelInventory, ChannelFinance, ChannelStaff:
		return true
	}
	return false
}

// TokenScope selects which of the two persisted token slots a bearer token
// occupies. Staff tokens are kept separate from all other tokens.
type TokenScope int

const (
	ScopeStandard TokenScope = iota
	ScopeStaff
)

// ScopeFor derives the token slot for a canonical role.
func ScopeFor(r Role) TokenScope {
	if r == RoleStaff {
		return ScopeStaff
	}
	return ScopeStandard
}

// Target is a navigation destination the embedding UI resolves to a screen.
type Target string

const (
	TargetPassengerHome Target = "passenger_home"
	TargetAdminHome     Target = "admin_home"
	TargetStaffHome     Target = "staff_home"
	TargetFinanceHome   Target = "finance_home"
	TargetInventoryHome Target = "inventory_home"
	TargetSupplierHome  Target = "supplier_home"
)

// Session is the authenticated identity for the process lifetime. Exactly one
// canonical role is active per session. Token and StaffToken are distinct
// persisted slots; at most one is populated, selected by ScopeFor(Role).
type Session struct {
	Role        Role   `json:"role"`
	RawRole     string `json:"raw_role"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token,omitempty"`
	StaffToken  string `json:"staff_token,omitempty"`
}

// SetToken stores tok in the slot matching scope, leaving the other slot empty.
func (s *Session) SetToken(scope TokenScope, tok string) {
	if scope == ScopeStaff {
		s.StaffToken = tok
		s.Token = ""
		return
	}
	s.Token = tok
	s.StaffToken = ""
}

// BearerToken returns whichever token slot is populated.
func (s *Session) BearerToken() string {
	if s.StaffToken != "" {
		return s.StaffToken
	}
	return s.Token
}

// AuthResult is the backend's answer to a successful login call, before role
// normalization.
type AuthResult struct {
	Token       string
	DisplayName string
	RawRole     string
	RawCategory string
}

// InventoryItem is one raw stock line as listed by the backend. The listing
// may contain several entries sharing one Name (separate stock batches).
type InventoryItem struct {
	Name         string  `json:"item_name"`
	Stock        float64 `json:"current_stock"`
	ReorderLevel float64 `json:"reorder_level"`
	Unit         string  `json:"unit"`
}

// StockStatus classifies a merged inventory row.
type StockStatus string

const (
	OutOfStock StockStatus = "out_of_stock"
	LowStock   StockStatus = "low_stock"
	InStock    StockStatus = "in_stock"
)

// InventoryRow is one merged row per distinct item name, derived from a raw
// snapshot on every fetch and never persisted.
type InventoryRow struct {
	Name         string
	Stock        float64
	ReorderLevel float64
	Unit         string
	Status       StockStatus
}

// Sender marks which side of a conversation produced a message.
type Sender string

const (
	SenderLocal  Sender = "local"
	SenderRemote Sender = "remote"
)

// ChatMessage is one message in a two-party conversation. ID is
// server-assigned, or client-generated for optimistic sends awaiting
// confirmation.
type ChatMessage struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// ConversationKey identifies a two-party conversation by its participants.
type ConversationKey struct {
	Local  string
	Remote string
}

func (k ConversationKey) String() string {
	return k.Local + "~" + k.Remote
}
