// Package stack provides the commands declaring, checking and applying the registry stack.
package stack
