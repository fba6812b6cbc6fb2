// Package role normalizes heterogeneous role signals from the backend into
// the application's canonical roles and maps each role to its home screen.
package role

import (
	"fmt"
	"strings"

	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/model"
)

// Resolve picks the first non-empty of (rawRole, rawCategory, the channel's
// own label), lower-cases it and maps it onto a canonical role. Legacy
// backend values are remapped ("operating" means staff, "user" means
// passenger); everything else must match a canonical role name
// case-insensitively. An unmatched value is an error, never a default:
// routing a user to the wrong home screen is a misroute, not a fallback.
func Resolve(rawRole, rawCategory string, ch model.Channel) (model.Role, error) {
	raw := strings.TrimSpace(rawRole)
	if raw == "" {
		raw = strings.TrimSpace(rawCategory)
	}
	if raw == "" {
		raw = string(ch)
	}

	switch norm := strings.ToLower(raw); norm {
	case "operating":
		return model.RoleStaff, nil
	case "user":
		return model.RolePassenger, nil
	default:
		if r := model.Role(norm); r.Valid() {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errs.ErrUnknownRole, raw)
}

// Home maps a canonical role to its navigation target. Total over the
// canonical set; an invalid role yields an empty target and callers only
// reach this after Resolve succeeded.
func Home(r model.Role) model.Target {
	switch r {
	case model.RolePassenger:
		return model.TargetPassengerHome
	case model.RoleAdmin:
		return model.TargetAdminHome
	case model.RoleStaff:
		return model.TargetStaffHome
	case model.RoleFinance:
		return model.TargetFinanceHome
	case model.RoleInventory:
		return model.TargetInventoryHome
	case model.RoleSupplier:
		return model.TargetSupplierHome
	}
	return ""
}
