// Package poster defines PDF poster generation for shows.
package poster
