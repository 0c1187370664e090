// Package crawlers 신문사별 뉴스 기사 수집 기능을 제공한다
//
// # 개요
//
// crawlers 패키지는 정적(Colly)과 렌더링(go-rod) 두 가지 수집 방식으로
// 신문사 목록 페이지를 순회하며 당일 기사를 수집한다.
// 핵심 특성: 신문사별 전용 세션, 요청 간 랜덤 대기, 429 대응 재시도,
// 당일 기사 구간에서의 조기 종료.
//
// # 핵심 구성요소
//
// ## PublisherDriver
//
// 신문사 한 곳의 수집 상태 기계. 카테고리 → 하위 카테고리 → 페이지 → 기사
// 순으로 순회하며, 당일이 아닌 기사를 만나면 해당 하위 카테고리의 수집을
// 그 지점에서 멈춘다. 기사 한 건의 실패는 건너뛰고 계속한다.
//
//	driver, err := NewPublisherDriver(pubCfg, crawlCfg)
//	if err != nil { /* 오류 처리 */ }
//	defer driver.Close()
//
//	articles, err := driver.Run(ctx)
//
// ## StaticFetcher / RenderedSession
//
// DocumentFetcher 인터페이스의 두 구현.
// StaticFetcher는 Colly로 HTTP 요청을 보내고 gzip/deflate/brotli 응답을
// 해제해 파싱한다. RenderedSession은 go-rod로 브라우저를 기동해 스크립트
// 렌더링이 끝난 문서를 가져온다. 브라우저 기동은 첫 요청까지 미루고,
// 이상 종료 시 재기동한다.
//
// ## ArticleExtractor
//
// 신문사별 기사 추출기. 제목/작성일자/본문을 각 신문사의 마크업 규칙에
// 맞춰 추출한다. [속보], [단독] 외의 대괄호 접두 제목은 비기사로 걸러낸다.
//
// ## RetryPolicy
//
// 페이지 로드 재시도 정책. 일반 실패는 지수 백오프(3초×2^n + 랜덤),
// 429는 선형 대기(15초 + 5초×n + 랜덤)를 적용하며 재시도마다
// User-Agent를 교체한다.
//
// ## SessionGate
//
// 가용 메모리와 CPU 코어 수로 동시 수집 세션 상한을 산정한다.
// 설정의 max_sessions가 0이면 이 값을 쓴다.
//
// # 동시성
//
// 드라이버 하나는 단일 고루틴에서 순차 동작하며, 신문사 간 병렬성은
// 상위의 오케스트레이터가 드라이버 단위로 부여한다. 세션(브라우저/HTTP
// 클라이언트)은 드라이버 간에 공유하지 않는다.
package crawlers
