package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// JobModulePrefix 岗位模块
	JobModulePrefix = "job"
	// EmbedModulePrefix 嵌入模块
	EmbedModulePrefix = "embed"
	// BatchModulePrefix 批次模块
	BatchModulePrefix = "batch"

	// EntityText 文本实体
	EntityText = "text"
	// EntityVector 向量实体
	EntityVector = "vector"
	// EntityRanking 排名实体
	EntityRanking = "ranking"

	// KeyJobDescriptionText JD文本缓存 (STRING)
	// 格式: app:job:text:{batchID}
	KeyJobDescriptionText = AppPrefix + ":" + JobModulePrefix + ":" + EntityText + ":%s"

	// KeyEmbeddingVector 文本嵌入缓存 (STRING, JSON编码的向量)
	// 格式: app:embed:vector:{textMD5}
	KeyEmbeddingVector = AppPrefix + ":" + EmbedModulePrefix + ":" + EntityVector + ":%s"

	// KeyBatchRanking 批次排名缓存 (STRING, JSON编码的结果列表)
	// 格式: app:batch:ranking:{batchID}
	KeyBatchRanking = AppPrefix + ":" + BatchModulePrefix + ":" + EntityRanking + ":%s"
)
