// Package routes содержит именованные маршруты сервиса и их обратное построение.
package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Имена маршрутов.
const (
	Home    = "notes:home"
	List    = "notes:list"
	Add     = "notes:add"
	Success = "notes:success"
	Detail  = "notes:detail"
	Edit    = "notes:edit"
	Delete  = "notes:delete"

	Login  = "users:login"
	Logout = "users:logout"
	Signup = "users:signup"
)

// NextParam - параметр запроса с адресом возврата после входа.
const NextParam = "next"

// Ошибки построения адреса.
var (
	ErrUnknownRoute  = errors.New("unknown route")
	ErrArgumentCount = errors.New("wrong number of route arguments")
)

// Route - шаблон пути маршрута в формате fiber.
// Protected маршруты доступны только вошедшим пользователям.
type Route struct {
	Name      string
	Path      string
	Protected bool
}

var table = []Route{
	{Home, "/", false},
	{Login, "/auth/login/", false},
	{Logout, "/auth/logout/", false},
	{Signup, "/auth/signup/", false},
	{List, "/notes/", true},
	{Add, "/add/", true},
	{Success, "/done/", true},
	{Detail, "/note/:slug/", true},
	{Edit, "/edit/:slug/", true},
	{Delete, "/delete/:slug/", true},
}

var byName = func() map[string]string {
	m := make(map[string]string, len(table))
	for _, r := range table {
		m[r.Name] = r.Path
	}
	return m
}()

// Path возвращает шаблон пути маршрута name.
func Path(name string) string {
	return byName[name]
}

// All возвращает все маршруты в порядке регистрации.
func All() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Reverse строит путь маршрута name, подставляя args вместо параметров по порядку.
func Reverse(name string, args ...string) (string, error) {
	pattern, ok := byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}

	segments := strings.Split(pattern, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("%w: %s", ErrArgumentCount, name)
		}
		segments[i] = url.PathEscape(args[next])
		next++
	}
	if next != len(args) {
		return "", fmt.Errorf("%w: %s", ErrArgumentCount, name)
	}

	return strings.Join(segments, "/"), nil
}

// URL как Reverse, но возвращает пустую строку при ошибке. Используется в шаблонах.
func URL(name string, args ...string) string {
	path, err := Reverse(name, args...)
	if err != nil {
		return ""
	}
	return path
}

// LoginRedirect возвращает адрес страницы входа с возвратом на next.
// Слеши в next не экранируются.
func LoginRedirect(next string) string {
	return Path(Login) + "?" + NextParam + "=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext сообщает, ведет ли next на локальный путь этого сервиса.
func SafeNext(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") {
		return false
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return false
	}
	u, err := url.Parse(next)
	return err == nil && u.Scheme == "" && u.Host == ""
}
