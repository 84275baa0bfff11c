package auth

import "github.com/dmitrijs2005/libkeeper/internal/server/models"

func IsLibrarian(id models.Identity) bool { return id.Role == models.RoleLibrarian }

func IsUser(id models.Identity) bool { return id.Role == models.RoleUser }
