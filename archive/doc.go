// Public domain.

/*
Package archive implements clients for remote astronomical archives.

Covered services are the Gaia archive (GACS) TAP endpoint, including
authenticated user-table uploads and crossmatch queries, the Vizier
vizquery command line client, the Simbad sim-script interface, the
exoplanet orbit database, and the Minor Planet Center observatory code
list.

All query helpers cache results in local files: an existing result file
is read back instead of repeating the remote query, unless an overwrite
flag forces a fresh one.
*/
package archive
