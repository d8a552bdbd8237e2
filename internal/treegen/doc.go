// Package treegen generates synthetic directory trees and gathers statistics about them.
//
// Every generated directory holds an index artifact referencing nine children.
// Above the maximum depth each child is a file pointing at a subdirectory of the
// same name; at the maximum depth each child is a leaf file carrying a depth marker.
package treegen
