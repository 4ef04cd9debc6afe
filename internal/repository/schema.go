package repository

import "github.com/kaizenmobile/tenant-registry/internal/query"

// Table names.
const (
	AppStatsTable = "app_stats"
	AppUserTable  = "app_user"
	UserTable     = "jhi_user"
)

// Columns referenced by specifications and sort orders.
var (
	AppStatsID           = query.Col(AppStatsTable, "id")
	AppStatsUsedTenantID = query.Col(AppStatsTable, "used_tenant_id")

	AppUserID             = query.Col(AppUserTable, "id")
	AppUserTenantID       = query.Col(AppUserTable, "tenant_id")
	AppUserInternalUserFK = query.Col(AppUserTable, "internal_user_id")

	// InternalUserID is the id of the row joined by InternalUserJoin.
	InternalUserID = query.Col(InternalUserAlias, "id")
)

// InternalUserAlias names the jhi_user join of app_user queries.
const InternalUserAlias = "internal_user"

// InternalUserJoin is shared by the relationship filter and eager loading, so
// both resolve to a single join.
var InternalUserJoin = query.Join{
	Table: UserTable,
	Alias: InternalUserAlias,
	On:    InternalUserAlias + ".id = " + AppUserInternalUserFK.String(),
}

// AppStatsSortable maps JSON property names accepted by sort= to columns.
var AppStatsSortable = map[string]query.Column{
	"id":           AppStatsID,
	"usedTenantId": AppStatsUsedTenantID,
}

// AppUserSortable maps JSON property names accepted by sort= to columns.
var AppUserSortable = map[string]query.Column{
	"id":       AppUserID,
	"tenantId": AppUserTenantID,
}
