/*Package interval implements closed integer intervals as used to describe
  uncertainty around a genomic position: confidence intervals, inexact
  homology intervals and panel-of-normals regions.

  Offsets such as a confidence interval are relative to a position and must
  contain zero; absolute regions such as a PON region are plain coordinates.
  Both use the same Interval type; Shift converts between the two.
*/
package interval
