// Package source defines the tabular data source consumed by kddgo.
//
// A source maps a feature name to an ordered list of scalar readings. Matrices
// are built from the "Data" feature and the single-valued "Number of Rows" and
// "Number of Columns" features; multi-assembly data additionally carries
// "Number of Assemblies" and, optionally, "Number of Axial Levels".
//
// File formats are not part of this package. Hosts that keep sources as blobs
// can round-trip a Table through any codec.Codec with Encode and Decode.
package source
