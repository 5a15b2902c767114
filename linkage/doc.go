/*Package linkage builds the breakend link graph of one sample and searches it.

  Links come from three kinds of evidence:

    ASSEMBLY: two breakends of different SVs assembled by the same local
              assembly, facing each other.
    DSB:      two otherwise unlinked breakends close enough to be the two sides
              of one double-strand break.
    TRANSITIVE: a facing hop inferred during path search, within a bounded
              templated-insertion length.

  FindAlternatePaths uses the merged ASSEMBLY+DSB graph to look for an
  indirect route between the two breakends of an SV through other SVs. Such a
  route means the SV may be a duplicate call of the same rearrangement.

  Each phase builds a fresh LinkStore; callers merge or discard them.
*/
package linkage
