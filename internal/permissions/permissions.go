package permissions

import (
	"servicesales-pro/internal/models"
)

// Set is the capability set resolved for one role.
type Set map[models.Permission]struct{}

// Has reports whether the set grants the given permission.
func (s Set) Has(p models.Permission) bool {
	_, ok := s[p]
	return ok
}

// List returns the permissions in catalog order so responses are stable.
func (s Set) List() []models.Permission {
	out := make([]models.Permission, 0, len(s))
	for _, p := range All {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// All is the full permission catalog.
var All = []models.Permission{
	models.PermViewDashboard,
	models.PermViewPOS,
	models.PermViewRepairs,
	models.PermViewInventory,
	models.PermViewImportGoods,
	models.PermViewStockReport,
	models.PermViewDebt,
	models.PermViewVATInvoices,
	models.PermViewCustomers,
	models.PermViewSuppliers,
	models.PermViewEmployees,
	models.PermViewSettings,
	models.PermDeleteData,
	models.PermEditPrice,
}

// For resolves the permission set for a role code against the current role
// definitions. A role with no matching definition gets an empty set, which
// degrades the user to no visible pages.
func For(role models.Role, defs []models.RoleDefinition) Set {
	set := Set{}
	for _, def := range defs {
		if def.Code == role {
			for _, p := range def.Permissions {
				set[p] = struct{}{}
			}
			break
		}
	}
	return set
}

// Toggle flips one permission on one role and returns the updated
// definition, or nil when nothing changed. The ADMIN role's VIEW_SETTINGS
// bit is pinned: a toggle request for it is a no-op, so an admin can never
// lock everyone out of the settings page.
func Toggle(defs []models.RoleDefinition, role models.Role, perm models.Permission) *models.RoleDefinition {
	if role == models.RoleAdmin && perm == models.PermViewSettings {
		return nil
	}
	for i := range defs {
		if defs[i].Code != role {
			continue
		}
		for j, p := range defs[i].Permissions {
			if p == perm {
				defs[i].Permissions = append(defs[i].Permissions[:j], defs[i].Permissions[j+1:]...)
				return &defs[i]
			}
		}
		defs[i].Permissions = append(defs[i].Permissions, perm)
		return &defs[i]
	}
	return nil
}

// Defaults is the role catalog the system ships with. It is seeded into
// the roles table on first boot and restorable from the settings screen.
func Defaults() []models.RoleDefinition {
	return []models.RoleDefinition{
		{
			Code:        models.RoleAdmin,
			Name:        "Quản trị viên",
			Description: "Toàn quyền hệ thống",
			Permissions: append([]models.Permission{}, All...),
		},
		{
			Code:        models.RoleSales,
			Name:        "Nhân viên Kinh doanh",
			Description: "Bán hàng, xem kho, quản lý khách",
			Permissions: []models.Permission{
				models.PermViewDashboard, models.PermViewPOS, models.PermViewRepairs,
				models.PermViewInventory, models.PermViewStockReport, models.PermViewDebt,
				models.PermViewCustomers, models.PermViewSuppliers,
			},
		},
		{
			Code:        models.RoleTechnician,
			Name:        "Kỹ thuật viên",
			Description: "Sửa chữa, xem kho linh kiện",
			Permissions: []models.Permission{
				models.PermViewRepairs, models.PermViewInventory,
			},
		},
		{
			Code:        models.RoleAccountant,
			Name:        "Kế toán",
			Description: "Quản lý công nợ, hóa đơn VAT, báo cáo",
			Permissions: []models.Permission{
				models.PermViewDashboard, models.PermViewDebt, models.PermViewVATInvoices,
				models.PermViewStockReport, models.PermViewCustomers, models.PermViewSuppliers,
			},
		},
		{
			Code:        models.RoleWarehouse,
			Name:        "Thủ kho",
			Description: "Nhập hàng, quản lý tồn kho",
			Permissions: []models.Permission{
				models.PermViewInventory, models.PermViewImportGoods,
				models.PermViewStockReport, models.PermViewSuppliers,
			},
		},
	}
}
