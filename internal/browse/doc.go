// Package browse opens URLs with the operating system's default handler.
package browse
