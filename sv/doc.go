/*Package sv defines the structural-variant data model: breakends, the SVs that
  own them, and the Store arena that holds both for one sample.

  A Store assigns every breakend a dense BreakendID and every SV a dense SvID,
  in input order.  Other components (link stores, filter caches, duplicate
  and rescue sets) refer to breakends only by BreakendID, so a breakend value
  can be replaced in the arena (for example after realignment) without
  invalidating them.  The breakend-to-SV association is an id-to-id table
  kept next to the arena; a Breakend never points at its SV.

  Coordinates are 1-based and closed, as in VCF.
*/
package sv
