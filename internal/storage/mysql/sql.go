package mysql

const insertAnalysisSQL = `
INSERT INTO analyses
  (id, product_id, max_pages, total, positive, negative, neutral, issues, failed_pages, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Newest first; served by idx_analyses_product_created.
const listAnalysesSQL = `
SELECT
  id,
  product_id,
  max_pages,
  total,
  positive,
  negative,
  neutral,
  issues,
  failed_pages,
  created_at
FROM analyses
WHERE product_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`
