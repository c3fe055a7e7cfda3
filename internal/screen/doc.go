// Package screen models the layout a window shows: a Screen holds areas,
// an Area holds regions, and both carry handler lists and notifier
// listeners.
//
// Coordinates are window coordinates. Rectangles include their minimum
// edge and exclude the maximum one, so adjacent areas never both claim a
// point on their shared border.
package screen
