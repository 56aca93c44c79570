// Package analysis groups the numeric text-analysis kernels used by the
// pipeline services.
//
//   - textutil: Tokenisation, normalisation and the English stopword list
//   - tfidf: TF-IDF vector space over unigrams and bigrams
//   - yake: Unsupervised statistical keyphrase extraction
//   - kmeans: Seeded k-means++ clustering with restarts
//   - fuzzy: Indel-based string similarity ratio
//
// Each subpackage implements a driven port from internal/core/ports/driven
// or is used by one that does. None of them hold process-wide state.
package analysis
