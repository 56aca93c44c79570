// Package jsonfile persists graphs and topic terms as JSON files.
//
// Graphs use the node-link layout (directed, multigraph, graph, nodes,
// links) so graph.json files can be read by other graph tooling. Topic
// files are a single JSON object mapping topic names to term lists; the
// object's key order is significant and is preserved on read and write.
package jsonfile
