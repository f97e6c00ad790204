// Package permissions est le catalogue statique des permissions.
// Seules ces valeurs peuvent être attribuées à un profil.
package permissions

import (
	"fmt"
	"slices"
)

type Permission string

// Utilisateurs
const (
	ViewUsers         Permission = "Consulter les utilisateurs"
	CreateUsers       Permission = "Créer les utilisateurs"
	UpdateUsers       Permission = "Modifier les utilisateurs"
	DeleteUsers       Permission = "Supprimer les utilisateurs"
	UpdateUserProfils Permission = "Modifier les profils des utilisateurs"
)

// Paramètres des mots de passe
const (
	ViewPassParams   Permission = "Consulter les paramètres des mots de passe"
	UpdatePassParams Permission = "Modifier les paramètres des mots de passe"
)

// Connexions
const (
	ViewLoggings Permission = "Consulter les connexions des utilisateurs"
)

// Profils
const (
	ViewProfils             Permission = "Consulter les profils"
	CreateProfils           Permission = "Créer les profils"
	UpdateProfils           Permission = "Modifier les profils"
	DeleteProfils           Permission = "Supprimer les profils"
	UpdateProfilPermissions Permission = "Modifier les permissions des profils"
)

// Directions & départements
const (
	ViewDepartements   Permission = "Consulter les directions & départements"
	CreateDepartements Permission = "Créer les directions & départements"
	UpdateDepartements Permission = "Modifier les directions & départements"
	DeleteDepartements Permission = "Supprimer les directions & départements"
)

// Employés
const (
	ViewEmployes   Permission = "Consulter les employés"
	CreateEmployes Permission = "Créer les employés"
	UpdateEmployes Permission = "Modifier les employés"
	DeleteEmployes Permission = "Supprimer les employés"
)

// Missions
const (
	ViewMissions    Permission = "Consulter les missions"
	CreateMissions  Permission = "Créer les missions"
	UpdateMissions  Permission = "Modifier les missions"
	DeleteMissions  Permission = "Supprimer les missions"
	ApproveMissions Permission = "Approuver les missions"
	LockMissions    Permission = "Verrouiller & déverrouiller les missions"
)

// Group regroupement affiché côté client
type Group struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

var groups = []Group{
	{Name: "Utilisateurs", Permissions: []Permission{ViewUsers, CreateUsers, UpdateUsers, DeleteUsers, UpdateUserProfils}},
	{Name: "Paramètres des mots de passe", Permissions: []Permission{ViewPassParams, UpdatePassParams}},
	{Name: "Connexions des utilisateurs", Permissions: []Permission{ViewLoggings}},
	{Name: "Profils", Permissions: []Permission{ViewProfils, CreateProfils, UpdateProfils, DeleteProfils, UpdateProfilPermissions}},
	{Name: "Directions & départements", Permissions: []Permission{ViewDepartements, CreateDepartements, UpdateDepartements, DeleteDepartements}},
	{Name: "Employés", Permissions: []Permission{ViewEmployes, CreateEmployes, UpdateEmployes, DeleteEmployes}},
	{Name: "Missions", Permissions: []Permission{ViewMissions, CreateMissions, UpdateMissions, DeleteMissions, ApproveMissions, LockMissions}},
}

// nombre de groupes d'administration attribués au super administrateur
const adminGroupCount = 4

var index = func() map[Permission]struct{} {
	m := make(map[Permission]struct{})
	for _, g := range groups {
		for _, p := range g.Permissions {
			m[p] = struct{}{}
		}
	}
	return m
}()

// Groups retourne une copie du catalogue groupé
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Name: g.Name, Permissions: slices.Clone(g.Permissions)}
	}
	return out
}

// All retourne toutes les permissions dans l'ordre du catalogue
func All() []Permission {
	var out []Permission
	for _, g := range groups {
		out = append(out, g.Permissions...)
	}
	return out
}

// SuperAdmin permissions du profil super administrateur créé au bootstrap
func SuperAdmin() []Permission {
	var out []Permission
	for _, g := range groups[:adminGroupCount] {
		out = append(out, g.Permissions...)
	}
	return out
}

func IsValid(p string) bool {
	_, ok := index[Permission(p)]
	return ok
}

// Validate retourne la première valeur hors catalogue
func Validate(values []string) error {
	for _, v := range values {
		if !IsValid(v) {
			return fmt.Errorf("permission inconnue: %q", v)
		}
	}
	return nil
}

func Strings(ps []Permission) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
