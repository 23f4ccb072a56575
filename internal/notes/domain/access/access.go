// Package access решает, может ли пользователь выполнить действие над заметкой.
package access

import "yanote/internal/notes/domain/entities"

// Action - действие над заметками.
type Action int

const (
	// ActionPublic - главная страница и страницы входа, регистрации и выхода.
	ActionPublic Action = iota
	ActionList
	ActionDetail
	ActionAdd
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionPublic:
		return "public"
	case ActionList:
		return "list"
	case ActionDetail:
		return "detail"
	case ActionAdd:
		return "add"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Decision - итог проверки доступа.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	// NotFound скрывает чужую заметку так же, как отсутствующую.
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decide принимает решение для principal, действия action и заметки note.
// Для действий над конкретной заметкой note == nil дает NotFound.
func Decide(principal *entities.Principal, action Action, note *entities.Note) Decision {
	if action == ActionPublic {
		return Allow
	}
	if !principal.IsAuthenticated() {
		return RedirectToLogin
	}

	switch action {
	case ActionList, ActionAdd:
		return Allow
	case ActionDetail, ActionEdit, ActionDelete:
		if note.OwnedBy(principal.UserID) {
			return Allow
		}
		return NotFound
	default:
		return NotFound
	}
}

// FilterOwned оставляет только заметки principal, сохраняя порядок.
func FilterOwned(principal *entities.Principal, notes []*entities.Note) []*entities.Note {
	if !principal.IsAuthenticated() {
		return nil
	}

	owned := make([]*entities.Note, 0, len(notes))
	for _, n := range notes {
		if n.OwnedBy(principal.UserID) {
			owned = append(owned, n)
		}
	}
	return owned
}
