// Package mvc resolves conventional {controller}/{action} routes to handlers.
package mvc
