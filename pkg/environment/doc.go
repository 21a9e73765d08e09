// Package environment names the deployment environments the service knows
// about and parses them from configuration.
package environment
