// Package socratic embeds the Socratic planning workspace in a Go program:
// projects and their turn logs on disk, the three-step planning dialogue and
// hybrid (TF-IDF + embedding) search over a user's past conversations.
//
// # Search
//
//	client, _ := socratic.New(ctx, socratic.WithRoot("./conversations"))
//	defer client.Close()
//
//	resp, _ := client.Search("alice").Query("카페 창업").Limit(3).Do(ctx)
//	for _, hit := range resp.Results {
//	    fmt.Println(hit.Project, hit.Score, hit.Preview)
//	}
//
// Without WithEmbedder the dense component is unavailable and hybrid search
// degrades to 0.4 × the lexical score; use ModeLexical for plain TF-IDF ranking.
//
// # Dialogue
//
//	client, _ := socratic.New(ctx,
//	    socratic.WithRoot("./conversations"),
//	    socratic.WithCompleter(myLLM),
//	)
//	_, _ = client.Projects("alice").Create(ctx, "cafe")
//	reply, _ := client.Chat("alice", "cafe").Send(ctx, "카페를 열고 싶어")
//	summary, _ := client.Chat("alice", "cafe").Summarize(ctx)
package socratic
