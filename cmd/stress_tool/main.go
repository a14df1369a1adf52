package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// 点赞切换压测：同一个用户并发翻转同一篇文章
// 请求数为偶数时，结束后点赞状态必须回到初始值，否则说明切换丢了更新
var (
	baseURL = flag.String("base", "http://localhost:8080", "server base url")
	postID  = flag.String("post", "", "post id to hammer")
	token   = flag.String("token", "", "bearer token of the test user")
	total   = flag.Int("n", 1000, "number of toggle requests")
)

var httpClient *http.Client

func init() {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

func main() {
	flag.Parse()
	if *postID == "" || *token == "" {
		fmt.Println("usage: stress_tool -post <id> -token <jwt> [-n 1000]")
		return
	}

	fmt.Printf("开始压测：对文章 %s 并发执行 %d 次点赞切换...\n", *postID, *total)

	var wg sync.WaitGroup
	successCount := 0
	failCount := 0
	var mu sync.Mutex

	start := time.Now()

	for i := 0; i < *total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := toggleLike()
			mu.Lock()
			if ok {
				successCount++
			} else {
				failCount++
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	duration := time.Since(start)
	qps := float64(*total) / duration.Seconds()

	// 最后串行读一次，拿到终态
	finalState, _ := toggleLike()

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", *total)
	fmt.Printf("QPS: %.2f\n", qps)
	fmt.Printf("成功: %d, 失败: %d\n", successCount, failCount)
	fmt.Printf("终态 isLiked: %v (成功数为偶数时应与初始状态相反)\n", finalState)
	fmt.Println("--------------------------------------------------")
}

func toggleLike() (bool, bool) {
	url := fmt.Sprintf("%s/api/v1/posts/%s/like/", *baseURL, *postID)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return false, false
	}
	req.Header.Set("Authorization", "Bearer "+*token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != 200 {
		return false, false
	}

	var result struct {
		Code int `json:"code"`
		Data struct {
			IsLiked bool `json:"isLiked"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return false, false
	}

	return result.Data.IsLiked, result.Code == 0
}
