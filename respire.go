/*
Package respire implements a single-server, lattice-based private
information retrieval scheme built from RLWE and GSW ciphertexts over a
negacyclic ring. The library features:

    - A pure Go implementation of the ring, gadget, and RLWE/GSW layers.
    - A query/answer/extract pipeline sized by a small set of parameter
      presets, rather than a general-purpose FHE scheme.
    - A SIMD-packed first-dimension answer step that amortizes the database
      scan across Go's native concurrency.

See the pir package for the client- and server-side orchestration API.
*/
package respire
